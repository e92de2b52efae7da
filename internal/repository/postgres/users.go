package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/baynana/authserver/internal/apperrors"
	"github.com/baynana/authserver/internal/models"
	"github.com/baynana/authserver/internal/repository"
)

type UserRepo struct {
	DB DBTX
}

const createUser = `-- name: CreateUser
INSERT INTO users (username, display_name, password_hash, is_online)
VALUES ($1, $2, $3, true)
RETURNING uid, username, display_name, password_hash, photo_url, bio,
          followers_count, following_count, is_online, last_seen, created_at
`

func (r *UserRepo) CreateUser(ctx context.Context, arg repository.CreateUserParams) (models.User, error) {
	rows, _ := r.DB.Query(ctx, createUser, arg.Username, arg.DisplayName, arg.HashedPassword)
	return pgx.CollectOneRow(rows, rowToUser)
}

const getUserByUID = `-- name: GetUserByUID
SELECT uid, username, display_name, password_hash, photo_url, bio,
       followers_count, following_count, is_online, last_seen, created_at
FROM users
WHERE uid = $1
`

func (r *UserRepo) GetUserByUID(ctx context.Context, uid uuid.UUID) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByUID, uid)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return user, apperrors.ErrUserNotFound
	}

	return user, err
}

const getUserByUsername = `-- name: GetUserByUsername
SELECT uid, username, display_name, password_hash, photo_url, bio,
       followers_count, following_count, is_online, last_seen, created_at
FROM users
WHERE username = $1
LIMIT 1
`

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByUsername, username)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return user, apperrors.ErrUserNotFound
	}

	return user, err
}

const markOnline = `-- name: MarkOnline
UPDATE users
SET is_online = true, last_seen = $2
WHERE uid = $1
`

func (r *UserRepo) MarkOnline(ctx context.Context, uid uuid.UUID, lastSeen time.Time) error {
	tag, err := r.DB.Exec(ctx, markOnline, uid, lastSeen)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

func rowToUser(row pgx.CollectableRow) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UID,
		&u.Username,
		&u.DisplayName,
		&u.HashedPassword,
		&u.PhotoURL,
		&u.Bio,
		&u.FollowersCount,
		&u.FollowingCount,
		&u.IsOnline,
		&u.LastSeen,
		&u.CreatedAt,
	)
	return u, err
}
