// Package jwt реализует выпуск и парсинг пары JWT токенов (access + refresh)
// с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов.
// MakerImpl — конкретная реализация с общим секретным ключом
// и раздельными сроками жизни для access и refresh токенов.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и парсинга JWT токенов.
type Maker interface {
	// GenerateAccessToken выпускает короткоживущий access-токен с uid и username.
	GenerateAccessToken(useruid, username string) (string, error)
	// GenerateRefreshToken выпускает долгоживущий refresh-токен, несущий только uid.
	GenerateRefreshToken(useruid string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает *Claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токенов (TTL).
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов.
	accessTTL  time.Duration // Время жизни access-токена.
	refreshTTL time.Duration // Время жизни refresh-токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}
