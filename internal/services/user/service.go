// Package user handles profile reads and updates.
package user

import (
	"paygo/internal/models"
	"paygo/internal/repositories"
)

type UpdateProfileRequest struct {
	FirstName string
	LastName  string
}

type Service interface {
	GetProfile(userID uint) (*models.User, error)
	UpdateProfile(userID uint, req UpdateProfileRequest) (*models.User, error)
}

type service struct {
	users repositories.UserRepository
}

func NewService(users repositories.UserRepository) Service {
	return &service{users: users}
}

func (s *service) GetProfile(userID uint) (*models.User, error) {
	return s.users.GetByID(userID)
}

func (s *service) UpdateProfile(userID uint, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
