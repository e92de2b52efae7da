package handlers

import (
	"context"
	"net/http"

	"github.com/baynana/authserver/internal/handlers/middleware"
	"github.com/baynana/authserver/internal/handlers/render"
	"github.com/baynana/authserver/internal/logger"
	"github.com/baynana/authserver/internal/models"
)

type authService interface {
	// Register user and reserve its username
	// Has to return apperrors.ErrUsernameTaken if the username is reserved
	Register(ctx context.Context, username string, password string, displayName string) (models.User, models.IssuedToken, error)

	// Login user with username and password
	// Has to return apperrors.ErrUserNotFound if the user not found
	// and apperrors.ErrInvalidCredentials on password mismatch
	Login(ctx context.Context, username string, password string) (models.User, models.IssuedToken, error)

	// Report whether the username is free to register
	CheckUsername(ctx context.Context, username string) (bool, error)
}

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(auth authService, l logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", handleHealth())
	mux.Handle("POST /registerUser", handleRegister(auth, l))
	mux.Handle("POST /loginUser", handleLogin(auth, l))
	mux.Handle("POST /checkUsername", handleCheckUsername(auth, l))

	return chain(mux,
		middleware.LoggerMiddleware(l),
		middleware.CORSMiddleware(),
	)
}

func handleHealth() http.Handler {
	type healthResponse struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, healthResponse{Message: "Auth server is running!"})
	})
}
