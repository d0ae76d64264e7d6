package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matheusvf/loja-backend/internal/logging"
	authmw "github.com/matheusvf/loja-backend/internal/middleware/auth"
	"github.com/matheusvf/loja-backend/internal/mykafka"
	"github.com/matheusvf/loja-backend/internal/service"
	"github.com/matheusvf/loja-backend/internal/transport"
)

type AuthHandler struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("register_failed", "status", 400, "reason", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		l.Warn("register_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("register_success", "userID", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("login_failed", "status", 400, "reason", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, "user_events", req.Email, map[string]any{
		"type":  "user_logged_in",
		"email": req.Email,
	})

	l.Info("login_success")
	return c.JSON(http.StatusOK, pair)
}

// Refresh takes the refresh token from the Authorization header and returns a
// fresh pair; the presented token is revoked in the process.
func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	raw, err := authmw.BearerToken(c)
	if err != nil {
		return err
	}

	pair, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		l.Warn("refresh_failed", "error", err)
		return httpError(err)
	}

	l.Info("refresh_success")
	return c.JSON(http.StatusOK, pair)
}
