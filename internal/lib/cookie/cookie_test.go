package cookie

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAuthPair(t *testing.T) {
	rec := httptest.NewRecorder()

	SetAuthPair(rec, "access-value", "refresh-value")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)

	byName := map[string]string{}
	for _, c := range cookies {
		byName[c.Name] = c.Value
		assert.True(t, c.HttpOnly, "cookie %s must be HttpOnly", c.Name)
		assert.True(t, c.Secure, "cookie %s must be Secure", c.Name)
	}
	assert.Equal(t, "access-value", byName[AccessToken])
	assert.Equal(t, "refresh-value", byName[RefreshToken])
}

func TestClearAuthPair(t *testing.T) {
	rec := httptest.NewRecorder()

	ClearAuthPair(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge, "cookie %s must be expired", c.Name)
	}
}
