// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and the current-user lookup.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notebook/internal/common"
	"github.com/dmitrijs2005/notebook/internal/dbx"
	"github.com/dmitrijs2005/notebook/internal/server/auth"
	"github.com/dmitrijs2005/notebook/internal/server/models"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notebook/internal/server/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string `json:"name" form:"name" validate:"min=3" msg:"name must be 3 characters"`
	Email    string `json:"email" form:"email" validate:"email" msg:"Enter a valid email"`
	Password string `json:"password" form:"password" validate:"min=5" msg:"Password must be 5 characters" redact:"true"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"email" msg:"Enter a valid email"`
	Password string `json:"password" form:"password" validate:"min=5" msg:"Password must be 5 characters" redact:"true"`
}

// TokenIssuer mints session tokens for a user id.
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

type UserService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenIssuer
	validator   *validation.Validator
	now         func() time.Time
}

func NewUserService(tx dbx.Transactor, m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		tx:          tx,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		validator:   validation.New(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user and returns it with a fresh token attached.
// The email pre-check is advisory; the store's unique index decides races.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.tx.Conn())

	_, err := repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, common.ErrUserAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	token, err := s.tokens.GenerateToken(id)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Token:        token,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// the token is stored by the same INSERT, so no transaction is needed
	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	out := user.Public()
	out.Token = token
	return out, nil
}

// Login checks credentials and replaces the user's stored token with a new one.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	var out *models.User
	err := s.tx.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByEmail(ctx, in.Email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUserNotFound
			}
			return fmt.Errorf("error looking up user: %w", err)
		}

		if !s.hasher.Verify(in.Password, user.PasswordHash) {
			return common.ErrInvalidCredentials
		}

		token, err := s.tokens.GenerateToken(user.ID)
		if err != nil {
			return fmt.Errorf("error generating token: %w", err)
		}

		if err := repo.UpdateToken(ctx, user.ID, token); err != nil {
			return fmt.Errorf("error saving token: %w", err)
		}

		out = user.Public()
		out.Token = token
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetCurrentUser returns the user without password hash or token.
func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.tx.Conn()).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	return user.Public(), nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.NewValidationError("password", "Password must be at most 72 bytes", "")
		}
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return hash, nil
}
