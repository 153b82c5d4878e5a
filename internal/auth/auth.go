package auth

import (
	"fmt"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"teahouse/internal/entity"
)

type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticator checks the shared admin credential and issues the
// request-scoped tokens that guard the admin surface.
type Authenticator struct {
	username string
	password string
	secret   []byte
}

func NewAuthenticator(username, password, secret string) *Authenticator {
	return &Authenticator{username: username, password: password, secret: []byte(secret)}
}

// Login validates the credential pair and returns a signed token good
// for 24 hours.
func (a *Authenticator) Login(username, password string) (string, error) {
	if username != a.username || password != a.password {
		return "", fmt.Errorf("%w: invalid username or password", entity.ErrUnauthorized)
	}

	claims := &AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Middleware returns the JWT guard for the admin route group. Requests
// without a valid token are rejected before any mutation happens.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: a.secret,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(AdminClaims)
		},
	})
}
