package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baynana/authserver/internal/apperrors"
	"github.com/baynana/authserver/internal/models"
	"github.com/baynana/authserver/internal/repository"
	"github.com/baynana/authserver/internal/testutil"
)

func Test_UsernameRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Reservations reference users, so create one to reserve for
	withTx := func(t *testing.T, testFunc func(r *UsernameRepo, user models.User)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			users := &UserRepo{DB: tx}
			user, err := users.CreateUser(t.Context(), repository.CreateUserParams{
				Username:       "nora",
				DisplayName:    "Nora",
				HashedPassword: "hashedpassword123",
			})
			require.NoError(t, err, "user for reservation tests should be created")

			testFunc(&UsernameRepo{DB: tx}, user)
		})
	}

	t.Run("reserve ok", func(t *testing.T) {
		withTx(t, func(r *UsernameRepo, user models.User) {
			err := r.Reserve(t.Context(), "nora", user.UID)

			require.NoError(t, err)

			exists, err := r.Exists(t.Context(), "nora")
			require.NoError(t, err)
			assert.True(t, exists, "reserved username should exist")
		})
	})

	t.Run("reserve duplicate fails", func(t *testing.T) {
		withTx(t, func(r *UsernameRepo, user models.User) {
			err := r.Reserve(t.Context(), "nora", user.UID)
			require.NoError(t, err)

			err = r.Reserve(t.Context(), "nora", user.UID)

			assert.ErrorIs(t, err, apperrors.ErrUsernameTaken, "second reservation must fail with well known error")
		})
	})

	t.Run("exists on free username", func(t *testing.T) {
		withTx(t, func(r *UsernameRepo, _ models.User) {
			exists, err := r.Exists(t.Context(), "never-registered")

			require.NoError(t, err)
			assert.False(t, exists)
		})
	})
}
