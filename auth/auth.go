// Package auth issues and verifies locally signed session tokens. It is
// the development stand-in for the Auth0 tenant: the cookie middleware
// feeds the same Identity type the JWKS middleware does, so everything
// downstream is identical in both modes.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/notelab/notelab-api/middleware"
)

const cookieName = "auth_token"

// CreateToken signs a 24h HS256 session token for the given identity.
func CreateToken(secret, subject, email, name string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub":   subject,
			"email": email,
			"name":  name,
			"exp":   time.Now().Add(time.Hour * 24).Unix(),
		})

	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a session token, returning the identity
// it was issued for.
func VerifyToken(secret, tokenString string) (middleware.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return middleware.Identity{}, err
	}
	if !token.Valid {
		return middleware.Identity{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return middleware.Identity{}, fmt.Errorf("unexpected claims type")
	}

	id := middleware.Identity{}
	if sub, ok := claims["sub"].(string); ok {
		id.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		id.Name = name
	}
	if id.Subject == "" {
		return middleware.Identity{}, fmt.Errorf("token has no subject")
	}
	return id, nil
}

// Middleware reads the session cookie and, when it verifies, attaches the
// identity to the request. Like the Auth0 path, missing credentials pass
// through; SyncUser rejects identity-less requests.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err == nil {
				if id, err := VerifyToken(secret, cookie.Value); err == nil {
					r = r.WithContext(middleware.WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetSessionCookie attaches a freshly issued token to the response.
func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})
}
