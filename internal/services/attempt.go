package services

import (
	"github.com/Yessenchik/online-quiz-app/internal/models"

	"gorm.io/gorm"
)

type AttemptService struct {
	db *gorm.DB
}

func NewAttemptService(db *gorm.DB) *AttemptService {
	return &AttemptService{db: db}
}

func (s *AttemptService) Append(roomCode, username string, questionID *string, correct bool) error {
	attempt := models.Attempt{
		RoomID:     roomCode,
		Username:   username,
		QuestionID: questionID,
		Correct:    correct,
	}
	return s.db.Create(&attempt).Error
}
