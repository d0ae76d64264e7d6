package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matheusvf/loja-backend/internal/es"
	"github.com/matheusvf/loja-backend/internal/logging"
	"github.com/matheusvf/loja-backend/internal/mykafka"
	"github.com/matheusvf/loja-backend/internal/service"
	"github.com/matheusvf/loja-backend/internal/transport"
	"github.com/matheusvf/loja-backend/internal/util"
)

type ProductHandler struct {
	Svc      *service.ProductService
	Producer *mykafka.Producer
	Indexer  *es.Indexer
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.Svc.Create(ctx, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		l.Warn("product_create_failed", "error", err)
		return httpError(err)
	}

	if err := h.Indexer.IndexProduct(ctx, product); err != nil {
		l.Error("product_index_failed", "productID", product.ID, "error", err)
	}
	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("product_create_success", "productID", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.Svc.Update(ctx, id, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		l.Warn("product_update_failed", "error", err)
		return httpError(err)
	}

	if err := h.Indexer.IndexProduct(ctx, product); err != nil {
		l.Error("product_index_failed", "productID", product.ID, "error", err)
	}
	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		l.Warn("product_delete_failed", "error", err)
		return httpError(err)
	}

	if err := h.Indexer.DeleteProduct(ctx, id); err != nil {
		l.Error("product_index_failed", "productID", id, "error", err)
	}
	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) DeleteAll(c echo.Context) error {
	if err := h.Svc.DeleteAll(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) FindAll(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	perPage := util.ParseIntDefault(c.QueryParam("perPage"), util.DefaultPageSize)
	_, perPage = util.Calculate(page, perPage)

	result, err := h.Svc.FindAll(c.Request().Context(), page, perPage)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ProductHandler) FindByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.Svc.Search(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.upload_image")

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	product, err := h.Svc.UploadImage(ctx, id, file)
	if err != nil {
		l.Error("product_upload_image_failed", "productID", id, "error", err)
		return httpError(err)
	}

	l.Info("product_upload_image_success", "productID", id, "src", product.ImgSrc)
	return c.JSON(http.StatusOK, product)
}
