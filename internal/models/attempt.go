package models

import "time"

// Attempt is an append-only record of one answer submission. Rows are never
// updated or deleted; live scores are kept separately in the room hub.
type Attempt struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RoomID     string    `gorm:"size:6;not null;index" json:"room_id"`
	Username   string    `gorm:"size:100;not null" json:"username"`
	QuestionID *string   `gorm:"size:64" json:"question_id"`
	Correct    bool      `gorm:"not null" json:"correct"`
	CreatedAt  time.Time `json:"created_at"`
}
