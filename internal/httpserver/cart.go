package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/woodharbor/slabstore/internal/models"
	"github.com/woodharbor/slabstore/internal/service"
	"github.com/woodharbor/slabstore/internal/transport"
	"github.com/woodharbor/slabstore/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	uid, err := userID(c)
	if err != nil {
		l.Warn("get_cart_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.GetCart(ctx, uid)
	if err != nil {
		l.Error("get_cart_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get cart")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	uid, err := userID(c)
	if err != nil {
		l.Warn("add_to_cart_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item := models.CartItem{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := h.Svc.AddToCart(ctx, &item); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_to_cart_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "quantity>0 and product_id required")
		}
		l.Error("add_to_cart_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add to cart")
	}

	l.Info("add_to_cart_success", "product_id", req.ProductID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity")

	uid, err := userID(c)
	if err != nil {
		l.Warn("set_quantity_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("set_quantity_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_quantity_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.SetQuantity(ctx, itemID, uid, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("set_quantity_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		l.Error("set_quantity_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update quantity")
	}

	if item == nil {
		return c.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	uid, err := userID(c)
	if err != nil {
		l.Warn("remove_item_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("remove_item_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.RemoveItem(ctx, itemID, uid); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_item_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		l.Error("remove_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove item")
	}

	return c.NoContent(http.StatusNoContent)
}
