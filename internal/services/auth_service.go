package services

import (
	"fmt"
	"strings"
	"time"

	"deployhub/internal/apperror"
	"deployhub/internal/models"
	"deployhub/internal/utils"

	"github.com/google/uuid"
)

const (
	accessTokenLifetime  = 15 * time.Minute
	refreshTokenLifetime = 30 * 24 * time.Hour
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(user *models.User) error
	FindUserByID(id uuid.UUID) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	UpdateLastLogin(id uuid.UUID) error
}

// SessionStore tracks refresh-token sessions.
type SessionStore interface {
	Create(session *models.Session) error
	FindByToken(token string) (*models.Session, error)
	Revoke(token string) error
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
}

func NewAuthService(users UserStore, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// TokenPair is what a successful login or refresh hands back to the handler.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *AuthService) Register(user *models.User) (*models.User, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if !strings.Contains(user.Email, "@") {
		return nil, apperror.ValidationFailed("email", "email is invalid")
	}
	if len(user.Password) < 8 {
		return nil, apperror.ValidationFailed("password", "password must be at least 8 characters")
	}

	existing, err := s.users.FindUserByEmail(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("user", "email already registered")
	}

	hash, err := utils.Hash(user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Password = ""

	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (*TokenPair, *models.User, error) {
	user, err := s.users.FindUserByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, nil, apperror.ValidationFailed("email", "invalid email or password")
	}

	if err := utils.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperror.ValidationFailed("password", "invalid email or password")
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.UpdateLastLogin(user.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to record login: %w", err)
	}

	return pair, user, nil
}

// Refresh validates the refresh token against both its signature and the
// stored session, then issues a new access token. The session stays valid
// until logout or expiry.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := utils.VerifyJWT(refreshToken, utils.RefreshTokenSecret)
	if err != nil {
		return "", apperror.Forbidden("invalid refresh token")
	}

	session, err := s.sessions.FindByToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil || session.IsRevoked || time.Now().After(session.ExpiresAt) {
		return "", apperror.Forbidden("session expired or revoked")
	}

	return utils.GenerateJWT(claims.UserID, accessTokenLifetime, utils.AccessTokenSecret)
}

func (s *AuthService) Logout(refreshToken string) error {
	return s.sessions.Revoke(refreshToken)
}

func (s *AuthService) issueTokens(userID uuid.UUID) (*TokenPair, error) {
	access, err := utils.GenerateJWT(userID, accessTokenLifetime, utils.AccessTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := utils.GenerateJWT(userID, refreshTokenLifetime, utils.RefreshTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	session := &models.Session{
		UserID:       userID,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(refreshTokenLifetime),
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
