package services

import (
	"context"
	"errors"

	"github.com/pranvibmania-max/guardapp-sub001/internal/core"
	"github.com/pranvibmania-max/guardapp-sub001/internal/models"
	"github.com/pranvibmania-max/guardapp-sub001/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService authenticates the parent dashboard account.
type AuthService struct {
	store   *store.Store
	metrics core.Recorder
}

func NewAuthService(s *store.Store, m core.Recorder) *AuthService {
	return &AuthService{store: s, metrics: m}
}

// Login verifies the parent's credentials against the bcrypt hash.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Parent, error) {
	parent, err := s.store.GetParentByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			s.metrics.RecordParentLogin(false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(parent.PasswordHash), []byte(password),
	); err != nil {
		s.metrics.RecordParentLogin(false)
		return nil, ErrInvalidCredentials
	}

	s.metrics.RecordParentLogin(true)
	return parent, nil
}

// GetParentByID loads a parent account for session validation.
func (s *AuthService) GetParentByID(ctx context.Context, id string) (*models.Parent, error) {
	return s.store.GetParentByID(id)
}
