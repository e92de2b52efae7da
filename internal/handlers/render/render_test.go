package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Render(t *testing.T) {
	t.Parallel()

	t.Run("JSON sets content type and code", func(t *testing.T) {
		w := httptest.NewRecorder()

		JSON(w, map[string]bool{"available": true})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"available": true}`, w.Body.String())
	})

	t.Run("Error renders single error field", func(t *testing.T) {
		w := httptest.NewRecorder()

		Error(w, "Username is not available", http.StatusBadRequest)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "Username is not available"}`, w.Body.String())
	})
}

func Test_BindAndValidate(t *testing.T) {
	t.Parallel()

	type request struct {
		Username string `json:"username" validate:"required,min=2"`
		Password string `json:"password" validate:"required,min=8"`
	}

	bind := func(t *testing.T, body string) (*httptest.ResponseRecorder, request, error) {
		t.Helper()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		data, err := BindAndValidate[request](w, r)
		return w, data, err
	}

	t.Run("valid body ok", func(t *testing.T) {
		w, data, err := bind(t, `{"username": "nora", "password": "p@ss1234"}`)

		require.NoError(t, err)
		assert.Equal(t, "nora", data.Username)
		assert.Equal(t, "p@ss1234", data.Password)
		assert.Empty(t, w.Body.String(), "nothing should be written on success")
	})

	t.Run("broken json renders decode error", func(t *testing.T) {
		w, _, err := bind(t, `{"username": `)

		require.Error(t, err)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "Failed to parse request body"}`, w.Body.String())
	})

	t.Run("wrong field type names the field", func(t *testing.T) {
		w, _, err := bind(t, `{"username": 42, "password": "p@ss1234"}`)

		require.Error(t, err)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "username")
	})

	t.Run("missing field renders validation error with json name", func(t *testing.T) {
		w, _, err := bind(t, `{"username": "nora"}`)

		require.Error(t, err)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "password: this field is required")
	})

	t.Run("too short value renders minimum", func(t *testing.T) {
		w, _, err := bind(t, `{"username": "nora", "password": "short"}`)

		require.Error(t, err)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "password: value is too short (minimum 8)")
	})
}
