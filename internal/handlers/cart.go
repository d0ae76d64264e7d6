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

type CartHandler struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := authmw.GetID(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.FindCart(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID, err := authmw.GetID(c)
	if err != nil {
		return err
	}

	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.Svc.AddItem(ctx, req.ProductID, req.Quantity, userID)
	if err != nil {
		l.Warn("cart_add_item_failed", "userID", userID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  req.Quantity,
	})

	l.Info("cart_add_item_success", "userID", userID, "productID", req.ProductID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	userID, err := authmw.GetID(c)
	if err != nil {
		return err
	}

	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}

	var req transport.CartItemUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.Svc.UpdateItem(ctx, productID, req.Quantity, userID)
	if err != nil {
		l.Warn("cart_update_item_failed", "userID", userID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":      "cart_item_updated",
		"userID":    userID,
		"productID": productID,
		"quantity":  req.Quantity,
	})

	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.delete_item")

	userID, err := authmw.GetID(c)
	if err != nil {
		return err
	}

	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteItem(ctx, userID, productID); err != nil {
		l.Warn("cart_delete_item_failed", "userID", userID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":      "cart_item_deleted",
		"userID":    userID,
		"productID": productID,
	})

	return c.NoContent(http.StatusNoContent)
}
