package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matheusvf/loja-backend/internal/logging"
	"github.com/matheusvf/loja-backend/internal/service"
	"github.com/matheusvf/loja-backend/internal/transport"
)

type CategoryHandler struct {
	Svc *service.CategoryService
}

func (h *CategoryHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.Svc.Create(ctx, req.Name)
	if err != nil {
		l.Warn("category_create_failed", "error", err)
		return httpError(err)
	}

	l.Info("category_create_success", "categoryID", category.ID)
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.Svc.Update(ctx, id, req.Name)
	if err != nil {
		l.Warn("category_update_failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) FindAll(c echo.Context) error {
	categories, err := h.Svc.FindAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) FindByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	category, err := h.Svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		l.Warn("category_delete_failed", "error", err)
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) DeleteAll(c echo.Context) error {
	if err := h.Svc.DeleteAll(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
