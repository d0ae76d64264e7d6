package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matheusvf/loja-backend/internal/logging"
	authmw "github.com/matheusvf/loja-backend/internal/middleware/auth"
	"github.com/matheusvf/loja-backend/internal/service"
	"github.com/matheusvf/loja-backend/internal/transport"
	"github.com/matheusvf/loja-backend/internal/util"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.Svc.Create(ctx, service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		l.Warn("user_create_failed", "error", err)
		return httpError(err)
	}

	l.Info("user_create_success", "userID", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.Svc.Update(ctx, id, service.UpdateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		RoleID: req.RoleID,
	})
	if err != nil {
		l.Warn("user_update_failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) FindAll(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	perPage := util.ParseIntDefault(c.QueryParam("perPage"), util.DefaultPageSize)
	_, perPage = util.Calculate(page, perPage)

	result, err := h.Svc.FindAll(c.Request().Context(), page, perPage)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *UserHandler) FindByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.Svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) FindMe(c echo.Context) error {
	userID, err := authmw.GetID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.FindByID(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		l.Warn("user_delete_failed", "error", err)
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) DeleteAll(c echo.Context) error {
	if err := h.Svc.DeleteAll(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) FindRoles(c echo.Context) error {
	roles, err := h.Svc.FindRoles(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, roles)
}
