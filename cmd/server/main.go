package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yessenchik/online-quiz-app/internal/config"
	"github.com/Yessenchik/online-quiz-app/internal/database"
	"github.com/Yessenchik/online-quiz-app/internal/handlers"
	"github.com/Yessenchik/online-quiz-app/internal/services"
	"github.com/Yessenchik/online-quiz-app/internal/ws"

	_ "github.com/Yessenchik/online-quiz-app/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Online Quiz API
// @version         1.0
// @description     Real-time multiplayer quiz rooms over WebSocket with durable users and attempts
// @host            localhost:8000
// @BasePath        /

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()
	userService := services.NewUserService(db)
	attemptService := services.NewAttemptService(db)
	dispatcher := ws.NewDispatcher(hub, userService, attemptService)

	healthHandler := handlers.NewHealthHandler(db)
	roomHandler := handlers.NewRoomHandler(userService)
	wsHandler := handlers.NewWSHandler(hub, dispatcher)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws", wsHandler.HandleWebSocket)

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/db-health", healthHandler.DBHealth)

		room := api.Group("/room")
		{
			room.POST("/create", roomHandler.CreateRoom)
			room.GET("/:roomCode", roomHandler.GetRoom)
			room.POST("/join", roomHandler.JoinRoom)
			room.DELETE("/leave/:roomCode", roomHandler.LeaveRoom)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go hub.RunLiveness(ctx, time.Duration(cfg.PingInterval)*time.Second)

	srv := &http.Server{Addr: ":" + cfg.ServerPort, Handler: r}
	go func() {
		log.Printf("server starting on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
