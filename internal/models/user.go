// Package models содержит доменную модель пользователя медиасервиса,
// включающую учетные данные, ссылки на медиафайлы и текущий refresh-токен.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя сервиса.
type User struct {
	UID           string    // Уникальный идентификатор пользователя
	Username      string    // Имя пользователя (уникальное, хранится в нижнем регистре)
	Email         string    // Электронная почта (уникальная, в нижнем регистре)
	FullName      string    // Полное имя
	PasswordHash  string    // Хэш пароля пользователя
	AvatarURL     string    // Ссылка на аватар (обязательная)
	CoverImageURL string    // Ссылка на обложку профиля (опциональная)
	RefreshToken  *string   // Текущий refresh-токен, nil после выхода
	CreatedAt     time.Time // Дата создания записи
}

// PublicUser — проекция пользователя для выдачи клиенту.
// Хэш пароля и refresh-токен в проекцию не входят.
type PublicUser struct {
	UID           string    `json:"uid"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullname"`
	AvatarURL     string    `json:"avatar_url"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToPublic возвращает проекцию пользователя без чувствительных полей.
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		UID:           u.UID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
	}
}
