package ws

import (
	"encoding/json"
	"log"
)

// ClientMessage is the inbound envelope. Fields beyond Type are populated
// depending on the message kind; QuestionID stays raw because clients send it
// as a string, a number, or null.
type ClientMessage struct {
	Type       string          `json:"type"`
	RoomID     string          `json:"roomId"`
	Username   string          `json:"username"`
	Ready      bool            `json:"ready"`
	QuestionID json.RawMessage `json:"questionId"`
	IsCorrect  bool            `json:"isCorrect"`
}

// UserSnapshot is one roster entry in outbound payloads, listed in join order.
type UserSnapshot struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Ready    bool   `json:"ready"`
}

// envelope marshals an outbound message once, so a broadcast serializes a
// single time regardless of room size.
func envelope(msgType string, fields map[string]any) []byte {
	payload := map[string]any{"type": msgType}
	for k, v := range fields {
		payload[k] = v
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ws: marshal %s: %v", msgType, err)
		return nil
	}
	return data
}
