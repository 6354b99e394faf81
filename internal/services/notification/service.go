package notification

import (
	"paygo/internal/models"
	"paygo/internal/repositories"
)

// Service is the read side of notifications: listing and read-state changes.
type Service interface {
	List(userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, int64, int64, error)
	MarkRead(id, userID uint) (int64, error)
	MarkAllRead(userID uint) error
	Delete(id, userID uint) error
}

type service struct {
	repo repositories.NotificationRepository
}

func NewService(repo repositories.NotificationRepository) Service {
	return &service{repo: repo}
}

func (s *service) List(userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, int64, int64, error) {
	list, total, err := s.repo.ListByUser(userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.repo.UnreadCount(userID)
	if err != nil {
		return nil, 0, 0, err
	}
	return list, total, unread, nil
}

func (s *service) MarkRead(id, userID uint) (int64, error) {
	if err := s.repo.MarkRead(id, userID); err != nil {
		return 0, err
	}
	return s.repo.UnreadCount(userID)
}

func (s *service) MarkAllRead(userID uint) error {
	return s.repo.MarkAllRead(userID)
}

func (s *service) Delete(id, userID uint) error {
	return s.repo.Delete(id, userID)
}
