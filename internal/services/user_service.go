package services

import (
	"fmt"

	"deployhub/internal/apperror"
	"deployhub/internal/models"

	"github.com/google/uuid"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindUserByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user", id.String())
	}
	return user, nil
}
