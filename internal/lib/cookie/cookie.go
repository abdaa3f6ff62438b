// Package cookie содержит вспомогательные функции для установки и очистки
// аутентификационных cookie (access и refresh токены).
//
// Оба cookie выставляются с флагами HttpOnly и Secure: токены дублируются
// в теле ответа для клиентов, читающих JSON, и в cookie для браузерных клиентов.
package cookie

import "net/http"

const (
	// AccessToken — имя cookie с access-токеном.
	AccessToken = "accessToken"
	// RefreshToken — имя cookie с refresh-токеном.
	RefreshToken = "refreshToken"
)

// SetAuthPair выставляет cookie с access и refresh токенами.
func SetAuthPair(w http.ResponseWriter, access, refresh string) {
	set(w, AccessToken, access)
	set(w, RefreshToken, refresh)
}

// ClearAuthPair удаляет оба аутентификационных cookie.
func ClearAuthPair(w http.ResponseWriter) {
	expire(w, AccessToken)
	expire(w, RefreshToken)
}

func set(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func expire(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
