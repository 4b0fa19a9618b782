package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware.
const (
	ContextUserID  = "userId"
	ContextIsAdmin = "isAdmin"
)

const roleAdmin = "admin"

// Claims identifies the caller. Tokens are issued by the external identity
// provider; only the HS256 signature and expiry are checked here.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

func (a *Authenticator) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// bearer returns the token from the Authorization header, or "" when absent.
func bearer(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func (a *Authenticator) authenticate(c echo.Context, raw string) error {
	claims, err := a.parse(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	c.Set(ContextUserID, claims.Subject)
	c.Set(ContextIsAdmin, claims.Role == roleAdmin)
	return nil
}

// RequireUser rejects requests without a valid bearer token.
func (a *Authenticator) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearer(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}
		if err := a.authenticate(c, raw); err != nil {
			return err
		}
		return next(c)
	}
}

// OptionalUser identifies the caller when a token is present. An invalid token
// is still rejected.
func (a *Authenticator) OptionalUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if raw := bearer(c); raw != "" {
			if err := a.authenticate(c, raw); err != nil {
				return err
			}
		}
		return next(c)
	}
}

// RequireAdmin must run after RequireUser.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if admin, _ := c.Get(ContextIsAdmin).(bool); !admin {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

// UserID returns the authenticated user's id, or "" for anonymous callers.
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}
