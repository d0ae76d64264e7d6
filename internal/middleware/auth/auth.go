package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/matheusvf/loja-backend/internal/service"
)

type TokenMiddleware struct {
	JWTSecret []byte
}

// RequireLogin parses the Bearer access token and puts the identity claims
// into the echo context.
func (t *TokenMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.parseHeader(c)
		if err != nil {
			return err
		}
		setUserContext(c, claims)
		return next(c)
	}
}

// AdminOnly additionally requires the administrative role claim. Routes
// without either middleware are public on purpose.
func (t *TokenMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.parseHeader(c)
		if err != nil {
			return err
		}
		role, _ := claims["role"].(string)
		if role != service.AdminRoleName {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		setUserContext(c, claims)
		return next(c)
	}
}

func (t *TokenMiddleware) parseHeader(c echo.Context) (jwt.MapClaims, error) {
	raw, err := BearerToken(c)
	if err != nil {
		return nil, err
	}
	claims, err := service.ParseAccessToken(raw, t.JWTSecret)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}
	return claims, nil
}

func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authorization header missing")
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header || raw == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return raw, nil
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(float64); ok {
		c.Set("userID", uint(sub))
	}
	if name, ok := claims["name"].(string); ok {
		c.Set("userName", name)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}

// GetID reads the authenticated user id set by RequireLogin/AdminOnly.
func GetID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return id, nil
}
