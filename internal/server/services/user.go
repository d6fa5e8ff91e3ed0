// Package services orchestrates the domain operations behind the REST
// handlers: registration and login, to-do CRUD and the legacy JSON import.
package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Deliberately loose: local@domain.tld shape, not RFC 5322.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minPasswordLen = 6
	bcryptCost     = 10
)

// UserService implements registration, login and token verification.
type UserService struct {
	db                    *sql.DB
	rm                    repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		rm:                    rm,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register validates the request, stores a new account with a bcrypt hash
// and returns the sanitized user plus a fresh token.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, common.NewValidationError("Email, password, and name are required")
	}
	if len(req.Password) < minPasswordLen {
		return nil, common.NewValidationError("Password must be at least 6 characters")
	}
	if !emailRe.MatchString(req.Email) {
		return nil, common.NewValidationError("Invalid email format")
	}

	repo := s.rm.Users(s.db)

	_, err := repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, common.ErrEmailTaken
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		CreatedAt:    time.Now(),
	}

	// The store-level uniqueness constraint is the real guard: two
	// concurrent registrations can both pass the lookup above.
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, common.ErrInternal
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &models.AuthResponse{User: user.View(), Token: token}, nil
}

// Login checks the credentials and issues a token. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	repo := s.rm.Users(s.db)

	user, err := repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &models.AuthResponse{User: user.View(), Token: token}, nil
}

// GetUserByID returns the sanitized view of an account.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.UserView, error) {
	user, err := s.rm.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := user.View()
	return &view, nil
}

// VerifyToken returns the user id embedded in a valid token.
func (s *UserService) VerifyToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
