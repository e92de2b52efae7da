package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/baynana/authserver/internal/models"
)

type CreateUserParams struct {
	Username       string
	DisplayName    string
	HashedPassword string
}

// User repository interface
type UserRepo interface {
	// Create user with store-generated uid
	// Profile fields (photo, bio, counters) get their defaults; isOnline starts true
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// Get user by uid or username
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByUID(ctx context.Context, uid uuid.UUID) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	// Set isOnline=true and lastSeen for the user
	// If user not found must return apperrors.ErrUserNotFound
	MarkOnline(ctx context.Context, uid uuid.UUID, lastSeen time.Time) error
}

// Username reservation index interface
// Enforces the one-reservation-per-username invariant
type UsernameRepo interface {
	// Reserve username for uid
	// If username is already reserved must return apperrors.ErrUsernameTaken
	Reserve(ctx context.Context, username string, uid uuid.UUID) error

	// Report whether username is reserved
	Exists(ctx context.Context, username string) (bool, error)
}

type Storage interface {
	User() UserRepo
	Username() UsernameRepo

	// Run fn against a transaction-scoped Storage
	// Commit if fn returns nil, rollback otherwise
	InTx(ctx context.Context, fn func(Storage) error) error
}
