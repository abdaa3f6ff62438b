// Package logout реализует HTTP-обработчик выхода пользователя.
//
// Обработчик доступен только аутентифицированным запросам: проекция
// пользователя берется из контекста, сохраненный refresh-токен очищается,
// оба аутентификационных cookie удаляются.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/media-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/media-backend/internal/http/response"
	"github.com/magabrotheeeer/media-backend/internal/lib/cookie"
	"github.com/magabrotheeeer/media-backend/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, userUID string) error
}

// Handler обрабатывает HTTP-запросы выхода.
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
// @Summary Выход пользователя
// @Description Очищает сохраненный refresh-токен и удаляет аутентификационные cookie.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Успешный выход"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("missing user in request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Logout(r.Context(), user.UID); err != nil {
		log.Error("logout failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to logout user"))
		return
	}

	cookie.ClearAuthPair(w)

	log.Info("user logged out", slog.String("username", user.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "user logged out",
	}))
}
