package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baynana/authserver/internal/apperrors"
	"github.com/baynana/authserver/internal/logger"
	"github.com/baynana/authserver/internal/models"
	"github.com/baynana/authserver/internal/repository"
)

const defaultOpTimeout = 5 * time.Second

// Interface to request signed identity tokens for a uid
type TokenIssuer interface {
	Issue(ctx context.Context, uid uuid.UUID) (models.IssuedToken, error)
}

type Config struct {
	// Hasher to use during registration or login
	// BcryptHasher is used if not set
	Hasher PasswordHasher

	// Upper bound for one workflow's store and issuer round-trips
	// If not set than default is used
	OpTimeout time.Duration
}

// Auth service: credential registration and verification workflows
type AuthService struct {
	hasher    PasswordHasher
	issuer    TokenIssuer
	storage   repository.Storage
	opTimeout time.Duration
	logger    logger.Logger
}

func NewService(cfg Config, issuer TokenIssuer, storage repository.Storage, l logger.Logger) (*AuthService, error) {
	if issuer == nil || storage == nil {
		return nil, errors.New("issuer and storage must not be nil")
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	if cfg.OpTimeout == 0 {
		cfg.OpTimeout = defaultOpTimeout
	}

	if l == nil {
		l = logger.NewNoOpLogger()
	}

	return &AuthService{
		hasher:    hasher,
		issuer:    issuer,
		storage:   storage,
		opTimeout: cfg.OpTimeout,
		logger:    l,
	}, nil
}

// Register new user and reserve its username
// Both writes happen in one transaction: a racing registration on the same
// username loses on the reservation key at commit time and gets ErrUsernameTaken
func (s *AuthService) Register(ctx context.Context, username string, password string, displayName string) (models.User, models.IssuedToken, error) {
	var user models.User
	var token models.IssuedToken

	username = strings.ToLower(username)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user, token, fmt.Errorf("can't use this as password, error=%w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	err = s.storage.InTx(ctx, func(storage repository.Storage) error {
		taken, err := storage.Username().Exists(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrUsernameTaken
		}

		user, err = storage.User().CreateUser(ctx, repository.CreateUserParams{
			Username:       username,
			DisplayName:    displayName,
			HashedPassword: hash,
		})
		if err != nil {
			return err
		}

		return storage.Username().Reserve(ctx, username, user.UID)
	})
	if err != nil {
		return user, token, mapTimeout(err)
	}

	token, err = s.issuer.Issue(ctx, user.UID)
	if err != nil {
		return user, token, fmt.Errorf("token could not be issued. Err: %w", mapTimeout(err))
	}

	return user, token, nil
}

// Login verifies credentials and issues a token
// The presence update is a liveness signal, not part of authentication:
// its failure is logged and the login still succeeds
func (s *AuthService) Login(ctx context.Context, username string, password string) (models.User, models.IssuedToken, error) {
	var token models.IssuedToken

	username = strings.ToLower(username)

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	user, err := s.storage.User().GetUserByUsername(ctx, username)
	if err != nil {
		return user, token, mapTimeout(err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return user, token, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.storage.User().MarkOnline(ctx, user.UID, now); err != nil {
		s.logger.Warn("presence update failed", "uid", user.UID, "error", err.Error())
	} else {
		user.IsOnline = true
		user.LastSeen = now
	}

	token, err = s.issuer.Issue(ctx, user.UID)
	if err != nil {
		return user, token, fmt.Errorf("token could not be issued. Err: %w", mapTimeout(err))
	}

	return user, token, nil
}

// CheckUsername reports whether username is still free to register
func (s *AuthService) CheckUsername(ctx context.Context, username string) (bool, error) {
	username = strings.ToLower(username)

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	taken, err := s.storage.Username().Exists(ctx, username)
	if err != nil {
		return false, mapTimeout(err)
	}

	return !taken, nil
}

func mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrTimeout
	}
	return err
}
