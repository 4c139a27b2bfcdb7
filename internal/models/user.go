package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:100;not null;index:idx_room_username" json:"username"`
	RoomID    string    `gorm:"size:6;not null;index:idx_room_username" json:"room_id"`
	TestID    *uint     `json:"test_id"`
	CreatedAt time.Time `json:"created_at"`
}
