package services

import (
	"errors"

	"github.com/Yessenchik/online-quiz-app/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// FindUser returns the user bound to (roomCode, username), or nil when no
// such row exists.
func (s *UserService) FindUser(roomCode, username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("room_id = ? AND username = ?", roomCode, username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) CreateUser(roomCode, username string) (*models.User, error) {
	user := models.User{
		Username: username,
		RoomID:   roomCode,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListRoomUsers(roomCode string) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("room_id = ?", roomCode).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// RemoveUser deletes the (roomCode, username) row and reports whether
// anything was removed.
func (s *UserService) RemoveUser(roomCode, username string) (bool, error) {
	res := s.db.Where("room_id = ? AND username = ?", roomCode, username).Delete(&models.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RoomInUse reports whether any user row references roomCode. Used to probe
// code uniqueness before handing a fresh code to a client.
func (s *UserService) RoomInUse(roomCode string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("room_id = ?", roomCode).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
