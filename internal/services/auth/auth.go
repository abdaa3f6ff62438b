// Package auth содержит бизнес-логику регистрации, входа, выхода
// и жизненного цикла пары access/refresh токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	jwtlib "github.com/magabrotheeeer/media-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/media-backend/internal/lib/password"
	"github.com/magabrotheeeer/media-backend/internal/lib/sl"
	"github.com/magabrotheeeer/media-backend/internal/models"
	"github.com/magabrotheeeer/media-backend/internal/storage/media"
	"github.com/magabrotheeeer/media-backend/internal/storage/repository"
)

// Ошибки бизнес-уровня; обработчики транслируют их в HTTP-статусы.
var (
	// ErrEmptyFields — обязательные поля отсутствуют или пусты после обрезки пробелов.
	ErrEmptyFields = errors.New("all fields are required")
	// ErrAvatarRequired — файл аватара не передан или его загрузка не дала ссылку.
	ErrAvatarRequired = errors.New("avatar file is required")
	// ErrUserExists — пользователь с таким username или email уже зарегистрирован.
	ErrUserExists = errors.New("user with email or username already exists")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrInvalidCredentials — пароль не совпадает с сохраненным хэшем.
	ErrInvalidCredentials = errors.New("invalid user credentials")
	// ErrInvalidToken — токен не прошел проверку подписи, истек
	// или не указывает на существующего пользователя.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenGeneration — сбой подписи или сохранения токена;
	// исходная причина пишется в лог и не возвращается клиенту.
	ErrTokenGeneration = errors.New("token generation failed")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUID возвращает пользователя по UID или repository.ErrNotFound.
	GetUserByUID(ctx context.Context, userUID string) (*models.User, error)

	// GetUserByUsernameOrEmail возвращает пользователя по одному из идентификаторов.
	GetUserByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)

	// UpdateRefreshToken перезаписывает refresh-токен пользователя; nil очищает слот.
	UpdateRefreshToken(ctx context.Context, userUID string, token *string) error
}

// MediaStorage описывает контракт загрузки медиафайлов во внешнее хранилище.
type MediaStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// ProjectionCache описывает кэш проекций пользователей для middleware.
type ProjectionCache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// EventPublisher описывает публикацию доменных событий.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// UserRegisteredEvent — событие успешной регистрации для воркеров уведомлений.
type UserRegisteredEvent struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

// RoutingKeyRegistered — routing key события регистрации.
const RoutingKeyRegistered = "registered"

// FileUpload — переданный клиентом файл для загрузки в медиахранилище.
type FileUpload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// RegisterInput — входные данные регистрации.
type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     *FileUpload
	CoverImage *FileUpload
}

// Service отвечает за регистрацию, авторизацию и жизненный цикл токенов.
type Service struct {
	log      *slog.Logger
	users    UserRepository
	media    MediaStorage
	cache    ProjectionCache
	events   EventPublisher
	jwtMaker jwtlib.Maker
	cacheTTL time.Duration
}

// NewService создает новый экземпляр Service. Кэш и публикация событий
// опциональны: nil отключает соответствующий механизм.
func NewService(log *slog.Logger, users UserRepository, media MediaStorage,
	cache ProjectionCache, events EventPublisher, jwtMaker jwtlib.Maker,
	cacheTTL time.Duration) *Service {
	return &Service{
		log:      log,
		users:    users,
		media:    media,
		cache:    cache,
		events:   events,
		jwtMaker: jwtMaker,
		cacheTTL: cacheTTL,
	}
}

// Register создает нового пользователя: проверяет заполненность полей и
// уникальность идентификаторов, загружает аватар (обязательно) и обложку
// (опционально) в медиахранилище, сохраняет запись с username и email
// в нижнем регистре и возвращает проекцию созданного пользователя.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.PublicUser, error) {
	const op = "auth.Register"

	fullname := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if fullname == "" || email == "" || username == "" || strings.TrimSpace(in.Password) == "" {
		return nil, ErrEmptyFields
	}

	existing, err := s.users.GetUserByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	if in.Avatar == nil {
		return nil, ErrAvatarRequired
	}

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	avatarURL, err := s.media.Upload(ctx, media.RandomKey("avatars", in.Avatar.Name), in.Avatar.ContentType, in.Avatar.Content)
	if err != nil || avatarURL == "" {
		if err != nil {
			s.log.Error("avatar upload failed", sl.Err(err))
		}
		return nil, ErrAvatarRequired
	}

	coverImageURL := ""
	if in.CoverImage != nil {
		coverImageURL, err = s.media.Upload(ctx, media.RandomKey("covers", in.CoverImage.Name), in.CoverImage.ContentType, in.CoverImage.Content)
		if err != nil {
			// Обложка опциональна: при сбое загрузки остается пустая ссылка
			s.log.Warn("cover image upload failed", sl.Err(err))
			coverImageURL = ""
		}
	}

	uid, err := s.users.CreateUser(ctx, models.User{
		Username:      username,
		Email:         email,
		FullName:      fullname,
		PasswordHash:  hashed,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load created user: %w", op, err)
	}

	if s.events != nil {
		if err := s.events.Publish(RoutingKeyRegistered, UserRegisteredEvent{
			UID:      created.UID,
			Username: created.Username,
			Email:    created.Email,
			FullName: created.FullName,
		}); err != nil {
			s.log.Warn("failed to publish user.registered event", sl.Err(err))
		}
	}

	return created.ToPublic(), nil
}

// Login проверяет пароль пользователя, найденного по username или email,
// и выпускает пару токенов. Достаточно одного из двух идентификаторов.
func (s *Service) Login(ctx context.Context, username, email, rawPassword string) (*models.PublicUser, string, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" && email == "" {
		return nil, "", "", ErrEmptyFields
	}

	user, err := s.users.GetUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", "", ErrUserNotFound
		}
		return nil, "", "", fmt.Errorf("auth.Login: %w", err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.IssueTokenPair(ctx, user.UID)
	if err != nil {
		return nil, "", "", err
	}
	return user.ToPublic(), access, refresh, nil
}

// IssueTokenPair выпускает пару access/refresh токенов и сохраняет refresh-токен
// в записи пользователя, перезаписывая предыдущее значение (единственный
// активный refresh-токен на пользователя).
func (s *Service) IssueTokenPair(ctx context.Context, userUID string) (string, string, error) {
	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrUserNotFound
		}
		s.log.Error("failed to resolve user for token pair", sl.Err(err))
		return "", "", ErrTokenGeneration
	}

	access, err := s.jwtMaker.GenerateAccessToken(user.UID, user.Username)
	if err != nil {
		s.log.Error("failed to sign access token", sl.Err(err))
		return "", "", ErrTokenGeneration
	}
	refresh, err := s.jwtMaker.GenerateRefreshToken(user.UID)
	if err != nil {
		s.log.Error("failed to sign refresh token", sl.Err(err))
		return "", "", ErrTokenGeneration
	}

	if err := s.users.UpdateRefreshToken(ctx, user.UID, &refresh); err != nil {
		s.log.Error("failed to persist refresh token", sl.Err(err))
		return "", "", ErrTokenGeneration
	}
	return access, refresh, nil
}

// Logout очищает сохраненный refresh-токен пользователя.
func (s *Service) Logout(ctx context.Context, userUID string) error {
	const op = "auth.Logout"
	if err := s.users.UpdateRefreshToken(ctx, userUID, nil); err != nil &&
		!errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Refresh проверяет refresh-токен: он должен быть подписан, не истекший и
// совпадать с сохраненным в записи пользователя. При успехе выпускается
// новая пара (ротация: старый refresh-токен перестает действовать).
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.jwtMaker.ParseToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	user, err := s.users.GetUserByUID(ctx, claims.UserUID)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return "", "", ErrInvalidToken
	}

	return s.IssueTokenPair(ctx, user.UID)
}

// Authenticate проверяет access-токен и возвращает проекцию пользователя.
// Любой сбой на этом пути нормализуется в ErrInvalidToken, чтобы не
// раскрывать детали проверки клиенту.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*models.PublicUser, error) {
	claims, err := s.jwtMaker.ParseToken(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	cacheKey := "user:" + claims.UserUID
	if s.cache != nil {
		var cached models.PublicUser
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			s.log.Warn("projection cache read failed", sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	user, err := s.users.GetUserByUID(ctx, claims.UserUID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	public := user.ToPublic()
	if s.cache != nil {
		if err := s.cache.Set(cacheKey, public, s.cacheTTL); err != nil {
			s.log.Warn("projection cache write failed", sl.Err(err))
		}
	}
	return public, nil
}

