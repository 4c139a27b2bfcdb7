package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/Yessenchik/online-quiz-app/internal/roomcode"
	"github.com/Yessenchik/online-quiz-app/internal/services"

	"github.com/gin-gonic/gin"
)

// RoomHandler serves the plain CRUD side of rooms. The live roster is owned
// by the websocket hub; these routes only touch durable user rows.
type RoomHandler struct {
	users *services.UserService
}

func NewRoomHandler(users *services.UserService) *RoomHandler {
	return &RoomHandler{users: users}
}

type CreateRoomRequest struct {
	Username string `json:"username" binding:"required"`
}

type JoinRoomRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
	Username string `json:"username" binding:"required"`
}

type LeaveRoomRequest struct {
	Username string `json:"username" binding:"required"`
}

// CreateRoom godoc
// @Summary      Create a room with a fresh code
// @Tags         room
// @Accept       json
// @Produce      json
// @Param        request body CreateRoomRequest true "Creator username"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Router       /api/room/create [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errResp("Username is required"))
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, errResp("Username is required"))
		return
	}

	code, err := h.freshCode()
	if err != nil {
		log.Printf("room: create failed: %v", err)
		c.JSON(http.StatusInternalServerError, errResp("Error creating room"))
		return
	}

	user, err := h.users.CreateUser(code, username)
	if err != nil {
		log.Printf("room: create failed: %v", err)
		c.JSON(http.StatusInternalServerError, errResp("Error creating room"))
		return
	}

	log.Printf("room: %s created by %s", code, username)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "roomCode": code, "user": user})
}

// GetRoom godoc
// @Summary      Fetch the durable roster of a room
// @Tags         room
// @Produce      json
// @Param        roomCode path string true "6-digit room code"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/room/{roomCode} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	code := strings.TrimSpace(c.Param("roomCode"))
	if !roomcode.Valid(code) {
		c.JSON(http.StatusBadRequest, errResp("Invalid room code"))
		return
	}

	users, err := h.users.ListRoomUsers(code)
	if err != nil {
		log.Printf("room: fetch %s failed: %v", code, err)
		c.JSON(http.StatusInternalServerError, errResp("Error fetching room details"))
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, errResp("Room not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "roomId": code, "users": users})
}

// JoinRoom godoc
// @Summary      Join a room, reusing an existing user record
// @Tags         room
// @Accept       json
// @Produce      json
// @Param        request body JoinRoomRequest true "Room code and username"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/room/join [post]
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errResp("roomCode and username required"))
		return
	}
	code := strings.TrimSpace(req.RoomCode)
	username := strings.TrimSpace(req.Username)

	if !roomcode.Valid(code) {
		c.JSON(http.StatusBadRequest, errResp("Invalid room code"))
		return
	}
	if username == "" {
		c.JSON(http.StatusBadRequest, errResp("Username is required"))
		return
	}

	inUse, err := h.users.RoomInUse(code)
	if err != nil {
		log.Printf("room: join %s failed: %v", code, err)
		c.JSON(http.StatusInternalServerError, errResp("Join failed"))
		return
	}
	if !inUse {
		c.JSON(http.StatusNotFound, errResp("Room not found"))
		return
	}

	existing, err := h.users.FindUser(code, username)
	if err != nil {
		log.Printf("room: join %s failed: %v", code, err)
		c.JSON(http.StatusInternalServerError, errResp("Join failed"))
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "created": false, "user": existing})
		return
	}

	user, err := h.users.CreateUser(code, username)
	if err != nil {
		log.Printf("room: join %s failed: %v", code, err)
		c.JSON(http.StatusInternalServerError, errResp("Join failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "created": true, "user": user})
}

// LeaveRoom godoc
// @Summary      Remove a user from a room's durable roster
// @Tags         room
// @Accept       json
// @Produce      json
// @Param        roomCode path string true "6-digit room code"
// @Param        request body LeaveRoomRequest true "Username"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/room/leave/{roomCode} [delete]
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	code := strings.TrimSpace(c.Param("roomCode"))
	if !roomcode.Valid(code) {
		c.JSON(http.StatusBadRequest, errResp("Invalid room code"))
		return
	}

	var req LeaveRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errResp("Username is required"))
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, errResp("Username is required"))
		return
	}

	removed, err := h.users.RemoveUser(code, username)
	if err != nil {
		log.Printf("room: leave %s failed: %v", code, err)
		c.JSON(http.StatusInternalServerError, errResp("Leave failed"))
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, errResp("User not found in room"))
		return
	}

	log.Printf("room: user %s left room %s", username, code)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *RoomHandler) freshCode() (string, error) {
	for {
		code := roomcode.Generate()
		inUse, err := h.users.RoomInUse(code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
}
