// Claims расширяет стандартные claims JWT идентификатором и именем пользователя.
//
// GenerateAccessToken, GenerateRefreshToken и ParseToken реализуют выпуск
// и валидацию токенов с заданными claims.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает пользовательские данные, хранящиеся в JWT.
type Claims struct {
	UserUID              string `json:"uid"`                // Идентификатор пользователя
	Username             string `json:"username,omitempty"` // Имя пользователя (только в access-токене)
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// GenerateAccessToken создает короткоживущий access-токен с uid и username,
// подписывая его секретным ключом.
func (j *MakerImpl) GenerateAccessToken(useruid, username string) (string, error) {
	return j.sign(Claims{
		UserUID:  useruid,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.accessTTL)),
		},
	})
}

// GenerateRefreshToken создает долгоживущий refresh-токен, несущий только uid.
func (j *MakerImpl) GenerateRefreshToken(useruid string) (string, error) {
	return j.sign(Claims{
		UserUID: useruid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.refreshTTL)),
		},
	})
}

func (j *MakerImpl) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия,
// возвращает Claims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
