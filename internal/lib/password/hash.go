// Package password отвечает за хэширование паролей пользователей.
//
// Пароли хранятся только в виде bcrypt-хэшей; исходное значение
// нигде не сохраняется и не логируется.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt молча обрезает вход длиннее 72 байт, поэтому такие пароли отклоняются.
const maxPasswordLength = 72

// ErrPasswordTooLong — пароль длиннее поддерживаемого bcrypt лимита.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// GetHash возвращает bcrypt-хэш пароля для хранения в базе данных.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	if len(password) > maxPasswordLength {
		return "", fmt.Errorf("%s: %w", op, ErrPasswordTooLong)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash проверяет, что пароль соответствует сохраненному bcrypt-хэшу.
// Возвращает nil при совпадении.
func CompareHash(storedHash, rawPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(rawPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
