package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baynana/authserver/internal/apperrors"
	"github.com/baynana/authserver/internal/repository"
	"github.com/baynana/authserver/internal/testutil"
)

func Test_UserRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Helper to run tests with its own UserRepo in transaction
	// When test end rollback
	withTx := func(t *testing.T, testFunc func(r *UserRepo)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			testFunc(&UserRepo{DB: tx})
		})
	}

	params := repository.CreateUserParams{
		Username:       "nora",
		DisplayName:    "Nora",
		HashedPassword: "hashedpassword123",
	}

	t.Run("create user ok", func(t *testing.T) {
		withTx(t, func(r *UserRepo) {
			user, err := r.CreateUser(t.Context(), params)

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.UID, "uid should be generated by the store")
			assert.Equal(t, "nora", user.Username)
			assert.Equal(t, "Nora", user.DisplayName)
			assert.Equal(t, "hashedpassword123", user.HashedPassword)
			assert.WithinDuration(t, time.Now(), user.CreatedAt, time.Second, "CreatedAt should be recent")
		})
	})

	t.Run("create user sets profile defaults", func(t *testing.T) {
		withTx(t, func(r *UserRepo) {
			user, err := r.CreateUser(t.Context(), params)

			require.NoError(t, err)
			assert.Empty(t, user.PhotoURL, "photo url should default to empty")
			assert.Empty(t, user.Bio, "bio should default to empty")
			assert.Zero(t, user.FollowersCount, "followers count should default to zero")
			assert.Zero(t, user.FollowingCount, "following count should default to zero")
			assert.True(t, user.IsOnline, "newly registered user should be online")
			assert.WithinDuration(t, time.Now(), user.LastSeen, time.Second)
		})
	})

	t.Run("get user by uid ok", func(t *testing.T) {
		withTx(t, func(r *UserRepo) {
			created, err := r.CreateUser(t.Context(), params)
			require.NoError(t, err)

			got, err := r.GetUserByUID(t.Context(), created.UID)

			require.NoError(t, err)
			assert.Equal(t, created.UID, got.UID)
			assert.Equal(t, created.Username, got.Username)
			assert.Equal(t, created.DisplayName, got.DisplayName)
			assert.Equal(t, created.HashedPassword, got.HashedPassword)
			assert.Equal(t, created.CreatedAt, got.CreatedAt)
		})
	})

	t.Run("get user by uid not found", func(t *testing.T) {
		withTx(t, func(r *UserRepo) {
			_, err := r.GetUserByUID(t.Context(), uuid.New())

			assert.ErrorIs(t, err, apperrors.ErrUserNotFound, "should return well known error")
		})
	})

	t.Run("get user by username ok", func(t *testing.T) {
		withTx(t, func(r *UserRepo) {
			created, err := r.CreateUser(t.Context(), params)
			require.NoError(t, err)

			got, err := r.GetUserByUsername(t.Context(), "nora")

			require.NoError(t, err)
			assert.Equal(t, created.UID, got.UID)
			assert.Equal(t, created.Username, got.Username)
		})
	})

	t.Run("get user by username not found", func(t *testing.T) {
		withTx(t, func(r *UserRepo) {
			_, err := r.GetUserByUsername(t.Context(), "never-registered")

			assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})

	t.Run("mark online updates presence", func(t *testing.T) {
		withTx(t, func(r *UserRepo) {
			created, err := r.CreateUser(t.Context(), params)
			require.NoError(t, err)

			seen := time.Now().Add(time.Minute).Truncate(time.Millisecond)
			err = r.MarkOnline(t.Context(), created.UID, seen)
			require.NoError(t, err)

			got, err := r.GetUserByUID(t.Context(), created.UID)
			require.NoError(t, err)
			assert.True(t, got.IsOnline)
			assert.WithinDuration(t, seen, got.LastSeen, time.Millisecond)
		})
	})

	t.Run("mark online unknown user fails", func(t *testing.T) {
		withTx(t, func(r *UserRepo) {
			err := r.MarkOnline(t.Context(), uuid.New(), time.Now())

			assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})
}
