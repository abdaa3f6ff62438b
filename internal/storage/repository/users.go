package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/media-backend/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Нарушение уникальности username/email транслируется в ErrAlreadyExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (username, email, full_name, password_hash,
			      avatar_url, cover_image_url)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.FullName, user.PasswordHash,
		user.AvatarURL, user.CoverImageURL).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUID возвращает пользователя по его UID.
func (s *Storage) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, full_name, password_hash,
			      avatar_url, cover_image_url, refresh_token, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// GetUserByUsernameOrEmail возвращает пользователя, чей username или email
// совпадает с одним из переданных идентификаторов. Сравнение по точному
// значению: оба поля хранятся в нижнем регистре.
func (s *Storage) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	const op = "storage.GetUserByUsernameOrEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, full_name, password_hash,
			      avatar_url, cover_image_url, refresh_token, created_at
			  FROM users
			  WHERE username = $1 OR email = $2`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username, email), op)
}

// UpdateRefreshToken перезаписывает refresh-токен пользователя (частичное
// обновление: другие поля записи не затрагиваются). nil очищает слот.
func (s *Storage) UpdateRefreshToken(ctx context.Context, userUID string, token *string) error {
	const op = "storage.UpdateRefreshToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET refresh_token = $1
			  WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, token, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var refreshToken sql.NullString
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash,
		&u.AvatarURL, &u.CoverImageURL, &refreshToken, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if refreshToken.Valid {
		u.RefreshToken = &refreshToken.String
	}
	return u, nil
}
