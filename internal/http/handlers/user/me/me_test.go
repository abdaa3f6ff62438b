package me

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/media-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/media-backend/internal/models"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestMeHandler_ServeHTTP(t *testing.T) {
	handler := New(newNoopLogger())

	user := &models.PublicUser{
		UID:       "11111111-2222-3333-4444-555555555555",
		Username:  "user1",
		Email:     "user1@example.com",
		FullName:  "User One",
		AvatarURL: "http://minio:9000/media/avatars/a.png",
	}

	t.Run("authenticated user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
		ctx = context.WithValue(ctx, middlewarectx.User, user)
		req = req.WithContext(ctx)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "OK", got["status"])

		data, ok := got["data"].(map[string]any)
		assert.True(t, ok)
		userData, ok := data["user"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, user.UID, userData["uid"])
		assert.Equal(t, user.Username, userData["username"])
		assert.Equal(t, user.Email, userData["email"])
	})

	t.Run("missing user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "Error", got["status"])
		assert.Equal(t, "unauthorized", got["error"])
	})
}
