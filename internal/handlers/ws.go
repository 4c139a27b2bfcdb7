package handlers

import (
	"log"
	"net/http"

	"github.com/Yessenchik/online-quiz-app/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub        *ws.Hub
	dispatcher *ws.Dispatcher
}

func NewWSHandler(hub *ws.Hub, dispatcher *ws.Dispatcher) *WSHandler {
	return &WSHandler{hub: hub, dispatcher: dispatcher}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket godoc
// @Summary      Real-time quiz room protocol
// @Description  Upgrade to WebSocket and exchange JSON envelopes (create_room, join_room, ready_toggle, start_quiz, answer, leave_room)
// @Tags         websocket
// @Router       /ws [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := ws.NewClient(conn)
	conn.SetPongHandler(func(string) error {
		client.MarkAlive()
		return nil
	})

	h.hub.Track(client)
	defer h.dispatcher.Disconnect(client)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		h.dispatcher.Dispatch(client, raw)
	}
}
