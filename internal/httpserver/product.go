package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/woodharbor/slabstore/internal/service"
	"github.com/woodharbor/slabstore/internal/util"
	"github.com/woodharbor/slabstore/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	q := service.ListQuery{
		Category:     c.QueryParam("category"),
		StatusBucket: c.QueryParam("status"),
	}
	q.Filter.SpecType = c.QueryParam("type")
	q.Filter.Material = c.QueryParam("material")
	q.Filter.Panel = c.QueryParam("panel")
	q.Filter.Query = c.QueryParam("q")
	q.Filter.LengthMin = parseFloatParam(c, "length_min")
	q.Filter.LengthMax = parseFloatParam(c, "length_max")
	q.Filter.WidthMin = parseFloatParam(c, "width_min")
	q.Filter.WidthMax = parseFloatParam(c, "width_max")
	q.Filter.ThicknessMin = parseFloatParam(c, "thick_min")
	q.Filter.ThicknessMax = parseFloatParam(c, "thick_max")
	q.Filter.PriceMin = parseFloatParam(c, "price_min")
	q.Filter.PriceMax = parseFloatParam(c, "price_max")

	total, items, err := h.Svc.ListProducts(ctx, q, offset, limit)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("get_products_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("get_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	l.Info("get_products_success")
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) Recommendations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.recommendations")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("recommendations_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	items, err := h.Svc.Recommendations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("recommendations_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("recommendations_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get recommendations")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) FilterOptions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.filter_options")

	options, err := h.Svc.FilterOptions(ctx, c.QueryParam("category"))
	if err != nil {
		l.Error("filter_options_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load filter options")
	}

	return c.JSON(http.StatusOK, options)
}

func (h *CatalogHTTP) RequestPurchase(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.request_purchase")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("request_purchase_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.RequestPurchase(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("request_purchase_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("request_purchase_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	l.Info("request_purchase_success", "product_id", id)
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func parseFloatParam(c echo.Context, name string) *float64 {
	s := c.QueryParam(name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
