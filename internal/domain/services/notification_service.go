package services

import (
	"errors"

	"gorm.io/gorm"

	"smartrent-http-service/internal/domain/models"
)

// InterfaceNotificationService defines the notification service interface
type InterfaceNotificationService interface {
	Create(userID, kind, title, message string) error
	ListForUser(userID string) ([]models.Notification, error)
	MarkRead(userID, id string) (*models.Notification, error)
}

// NotificationService stores and serves per-user notifications
type NotificationService struct {
	DB *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) InterfaceNotificationService {
	return &NotificationService{DB: db}
}

// Create writes one notification row
func (s *NotificationService) Create(userID, kind, title, message string) error {
	notification := models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	}
	return s.DB.Create(&notification).Error
}

// ListForUser returns the caller's notifications, newest first
func (s *NotificationService) ListForUser(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead marks one of the caller's notifications as read. Rows belonging
// to other users are reported as missing, not forbidden.
func (s *NotificationService) MarkRead(userID, id string) (*models.Notification, error) {
	var notification models.Notification
	err := s.DB.First(&notification, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	if err := s.DB.Model(&notification).Update("read", true).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}
