package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notelab/notelab-api/middleware"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken(testSecret, "local|1", "alice@example.com", "Alice")
	require.NoError(t, err)

	id, err := VerifyToken(testSecret, token)
	require.NoError(t, err)

	assert.Equal(t, "local|1", id.Subject)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, "Alice", id.Name)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := CreateToken(testSecret, "local|1", "alice@example.com", "Alice")
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := VerifyToken(testSecret, "not.a.token")
	assert.Error(t, err)
}

func TestMiddlewareAttachesIdentityFromCookie(t *testing.T) {
	token, err := CreateToken(testSecret, "local|1", "alice@example.com", "Alice")
	require.NoError(t, err)

	var got middleware.Identity
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, gotOK = middleware.IdentityFrom(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	Middleware(testSecret)(next).ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, gotOK)
	assert.Equal(t, "local|1", got.Subject)
}

func TestMiddlewarePassesThroughWithoutCookie(t *testing.T) {
	var gotOK bool
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, gotOK = middleware.IdentityFrom(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	Middleware(testSecret)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
	assert.False(t, gotOK)
}

func TestMiddlewareIgnoresTamperedCookie(t *testing.T) {
	token, err := CreateToken("other-secret", "local|1", "alice@example.com", "Alice")
	require.NoError(t, err)

	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = middleware.IdentityFrom(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	Middleware(testSecret)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.False(t, gotOK)
}
