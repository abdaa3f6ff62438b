// Package refresh реализует HTTP-обработчик ротации пары токенов.
//
// Refresh-токен берется из cookie refreshToken, при его отсутствии —
// из тела запроса. Валидный токен обменивается на новую пару; сохраненный
// слот перезаписывается, старый refresh-токен перестает действовать.
package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/media-backend/internal/http/response"
	"github.com/magabrotheeeer/media-backend/internal/lib/cookie"
	"github.com/magabrotheeeer/media-backend/internal/lib/sl"
	"github.com/magabrotheeeer/media-backend/internal/services/auth"
)

// Request — тело запроса для клиентов, не использующих cookie.
type Request struct {
	RefreshToken string `json:"refresh_token"`
}

// Service описывает интерфейс бизнес-логики ротации токенов.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

// Handler обрабатывает HTTP-запросы ротации токенов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновление пары токенов
// @Description Обменивает валидный refresh-токен на новую пару access/refresh.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request false "Refresh-токен (если не передан в cookie)"
// @Success 200 {object} map[string]any "Новая пара токенов"
// @Failure 401 {object} response.ErrorResponse "Отсутствующий или невалидный refresh-токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /refresh-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := tokenFromRequest(r)
	if token == "" {
		log.Error("missing refresh token in cookie and request body")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	access, refreshed, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrUserNotFound):
			log.Error("refresh token rejected", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid token"))
		default:
			log.Error("token refresh failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to refresh tokens"))
		}
		return
	}

	cookie.SetAuthPair(w, access, refreshed)

	log.Info("token pair refreshed")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"accessToken":  access,
		"refreshToken": refreshed,
	}))
}

// tokenFromRequest извлекает refresh-токен: cookie имеет приоритет над телом.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(cookie.RefreshToken); err == nil && c.Value != "" {
		return c.Value
	}
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}
