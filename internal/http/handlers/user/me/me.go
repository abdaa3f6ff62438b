// Package me реализует HTTP-обработчик получения текущего пользователя.
//
// Обработчик доступен только аутентифицированным запросам и возвращает
// проекцию пользователя, положенную в контекст middleware проверки токена.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/media-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/media-backend/internal/http/response"
)

// Handler обрабатывает HTTP-запросы текущего пользователя.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает проекцию аутентифицированного пользователя.
// @Tags User
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Проекция пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /users/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.me"

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

	log.Info("current user fetched", slog.String("username", user.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": user,
	}))
}
