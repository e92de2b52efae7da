package handlers

import (
	"errors"
	"net/http"

	"github.com/baynana/authserver/internal/apperrors"
	"github.com/baynana/authserver/internal/handlers/render"
	"github.com/baynana/authserver/internal/logger"
	"github.com/baynana/authserver/internal/models"
)

// User fields exposed to clients
type userPayload struct {
	UID         string `json:"uid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type authSuccessResponse struct {
	Success     bool        `json:"success"`
	CustomToken string      `json:"customToken"`
	User        userPayload `json:"user"`
}

func authSuccess(user models.User, token models.IssuedToken) authSuccessResponse {
	return authSuccessResponse{
		Success:     true,
		CustomToken: token.Value,
		User: userPayload{
			UID:         user.UID.String(),
			Username:    user.Username,
			DisplayName: user.DisplayName,
		},
	}
}

func handleRegister(auth authService, l logger.Logger) http.Handler {
	type registerRequest struct {
		Username    string `json:"username" validate:"required,min=2,max=32"`
		Password    string `json:"password" validate:"required,min=8,max=128"`
		DisplayName string `json:"displayName" validate:"required,max=100"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[registerRequest](w, r)
		if err != nil {
			return
		}

		user, token, err := auth.Register(r.Context(), data.Username, data.Password, data.DisplayName)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUsernameTaken):
				render.Error(w, "Username is not available", http.StatusBadRequest)
			default:
				l.Error("registration failed", "error", err.Error())
				render.Error(w, "Something went wrong while creating the account", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, authSuccess(user, token))
	})
}

func handleLogin(auth authService, l logger.Logger) http.Handler {
	type loginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[loginRequest](w, r)
		if err != nil {
			return
		}

		user, token, err := auth.Login(r.Context(), data.Username, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.Error(w, "Username does not exist", http.StatusBadRequest)
			case errors.Is(err, apperrors.ErrInvalidCredentials):
				render.Error(w, "Incorrect password", http.StatusBadRequest)
			default:
				l.Error("login failed", "error", err.Error())
				render.Error(w, "Something went wrong while logging in", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, authSuccess(user, token))
	})
}

func handleCheckUsername(auth authService, l logger.Logger) http.Handler {
	type checkUsernameRequest struct {
		Username string `json:"username" validate:"required"`
	}
	type checkUsernameResponse struct {
		Available bool `json:"available"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[checkUsernameRequest](w, r)
		if err != nil {
			return
		}

		available, err := auth.CheckUsername(r.Context(), data.Username)
		if err != nil {
			l.Error("username check failed", "error", err.Error())
			render.Error(w, "Something went wrong while checking the username", http.StatusInternalServerError)
			return
		}

		render.JSON(w, checkUsernameResponse{Available: available})
	})
}
