// Package middlewarectx содержит HTTP middleware для проверки access-токенов.
//
// JWTMiddleware ищет токен сначала в cookie accessToken, затем в заголовке
// Authorization (Bearer), проверяет его через сервис аутентификации и в случае
// успеха добавляет в контекст проекцию пользователя для дальнейшего
// использования в обработчиках.
//
// Любая ошибка проверки, включая внутренние сбои, возвращается как
// HTTP 401 Unauthorized, чтобы не раскрывать детали верификации.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/media-backend/internal/http/response"
	"github.com/magabrotheeeer/media-backend/internal/lib/cookie"
	"github.com/magabrotheeeer/media-backend/internal/lib/sl"
	"github.com/magabrotheeeer/media-backend/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ проекции аутентифицированного пользователя в контексте.
const User Key = "user"

// Service описывает интерфейс сервиса для проверки access-токена.
type Service interface {
	Authenticate(ctx context.Context, accessToken string) (*models.PublicUser, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет access-токен
// из cookie или заголовка Authorization.
//
// Если токен валиден, добавляет проекцию пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "auth.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := tokenFromRequest(r)
			if token == "" {
				log.Error("missing access token in cookie and authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			user, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest извлекает access-токен: cookie имеет приоритет над заголовком.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(cookie.AccessToken); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// UserFromContext возвращает проекцию пользователя из контекста запроса.
func UserFromContext(ctx context.Context) (*models.PublicUser, bool) {
	user, ok := ctx.Value(User).(*models.PublicUser)
	return user, ok
}
