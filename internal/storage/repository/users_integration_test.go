package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/media-backend/internal/models"
)

func TestStorage_CreateUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	user := models.User{
		Username:     "janedoe",
		Email:        "jane@x.com",
		FullName:     "Jane Doe",
		PasswordHash: "hashedpassword",
		AvatarURL:    "https://cdn.example.com/media/avatars/a.png",
	}

	uid, err := storage.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.NotEmpty(t, uid)

	got, err := storage.GetUserByUID(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "janedoe", got.Username)
	assert.Equal(t, "jane@x.com", got.Email)
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Nil(t, got.RefreshToken)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStorage_CreateUser_Duplicate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "janedoe", "jane@x.com", "hashedpassword", "https://cdn.example.com/a.png")

	tests := []struct {
		name string
		user models.User
	}{
		{
			name: "duplicate username",
			user: models.User{Username: "janedoe", Email: "other@x.com", FullName: "Other", PasswordHash: "h", AvatarURL: "u"},
		},
		{
			name: "duplicate email",
			user: models.User{Username: "otheruser", Email: "jane@x.com", FullName: "Other", PasswordHash: "h", AvatarURL: "u"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.CreateUser(context.Background(), tt.user)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAlreadyExists)
		})
	}
}

func TestStorage_GetUserByUsernameOrEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "janedoe", "jane@x.com", "hashedpassword", "https://cdn.example.com/a.png")

	got, err := storage.GetUserByUsernameOrEmail(context.Background(), "janedoe", "")
	require.NoError(t, err)
	assert.Equal(t, "janedoe", got.Username)

	got, err = storage.GetUserByUsernameOrEmail(context.Background(), "", "jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", got.Email)

	_, err = storage.GetUserByUsernameOrEmail(context.Background(), "nosuchuser", "nosuch@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_UpdateRefreshToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateUser(t, "janedoe", "jane@x.com", "hashedpassword", "https://cdn.example.com/a.png")

	token := "refresh-token-1"
	require.NoError(t, storage.UpdateRefreshToken(context.Background(), uid, &token))

	got, err := storage.GetUserByUID(context.Background(), uid)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, token, *got.RefreshToken)

	// Повторный выпуск перезаписывает единственный слот
	next := "refresh-token-2"
	require.NoError(t, storage.UpdateRefreshToken(context.Background(), uid, &next))
	got, err = storage.GetUserByUID(context.Background(), uid)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, next, *got.RefreshToken)

	// nil очищает слот
	require.NoError(t, storage.UpdateRefreshToken(context.Background(), uid, nil))
	got, err = storage.GetUserByUID(context.Background(), uid)
	require.NoError(t, err)
	assert.Nil(t, got.RefreshToken)
}

func TestStorage_UpdateRefreshToken_UnknownUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	token := "refresh-token"
	err := storage.UpdateRefreshToken(context.Background(), "00000000-0000-0000-0000-000000000000", &token)
	assert.ErrorIs(t, err, ErrNotFound)
}
