// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Запрос приходит как multipart/form-data: текстовые поля fullname, email,
// username, password и файлы avatar (обязательный) и coverImage (опциональный).
// Обработчик валидирует поля, передает данные и файлы бизнес-логике
// и возвращает проекцию созданного пользователя.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/media-backend/internal/http/response"
	"github.com/magabrotheeeer/media-backend/internal/lib/sl"
	"github.com/magabrotheeeer/media-backend/internal/models"
	"github.com/magabrotheeeer/media-backend/internal/services/auth"
)

// maxMultipartMemory ограничивает размер буфера разбора multipart-формы.
const maxMultipartMemory = 32 << 20

// Request — текстовые поля формы регистрации.
type Request struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.PublicUser, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает нового пользователя. Аватар обязателен, обложка опциональна.
// @Tags Auth
// @Accept  multipart/form-data
// @Produce  json
// @Param fullname formData string true "Полное имя"
// @Param email formData string true "Электронная почта"
// @Param username formData string true "Имя пользователя"
// @Param password formData string true "Пароль"
// @Param avatar formData file true "Аватар"
// @Param coverImage formData file false "Обложка профиля"
// @Success 201 {object} map[string]any "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или отсутствует аватар"
// @Failure 409 {object} response.ErrorResponse "Username или email уже заняты"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	req := Request{
		FullName: strings.TrimSpace(r.FormValue("fullname")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated", slog.String("username", req.Username))

	in := auth.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}

	avatar, closeAvatar, err := formFile(r, "avatar")
	if err == nil {
		defer closeAvatar()
		in.Avatar = avatar
	}
	cover, closeCover, err := formFile(r, "coverImage")
	if err == nil {
		defer closeCover()
		in.CoverImage = cover
	}

	user, err := h.service.Register(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmptyFields), errors.Is(err, auth.ErrAvatarRequired):
			log.Error("registration rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, auth.ErrUserExists):
			log.Error("registration conflict", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
		}
		return
	}

	log.Info("user registered", slog.String("username", user.Username))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user":    user,
		"message": "user registered successfully",
	}))
}

// formFile достает файл из multipart-формы и оборачивает его в auth.FileUpload.
func formFile(r *http.Request, field string) (*auth.FileUpload, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	upload := &auth.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}
	return upload, func() { _ = file.Close() }, nil
}
