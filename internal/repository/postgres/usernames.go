package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baynana/authserver/internal/apperrors"
)

// Reservation index for usernames
// The primary key on username is the uniqueness authority for the whole store
type UsernameRepo struct {
	DB DBTX
}

const reserveUsername = `-- name: ReserveUsername
INSERT INTO usernames (username, user_uid)
VALUES ($1, $2)
`

func (r *UsernameRepo) Reserve(ctx context.Context, username string, uid uuid.UUID) error {
	_, err := r.DB.Exec(ctx, reserveUsername, username, uid)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return apperrors.ErrUsernameTaken
		}
	}

	return err
}

const usernameExists = `-- name: UsernameExists
SELECT EXISTS (SELECT 1 FROM usernames WHERE username = $1)
`

func (r *UsernameRepo) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, usernameExists, username).Scan(&exists)
	return exists, err
}
