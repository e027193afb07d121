package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/woodharbor/slabstore/internal/service"
	"github.com/woodharbor/slabstore/pkg/logging"
)

type FavoriteHTTP struct {
	Svc *service.FavoriteService
}

func (h *FavoriteHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.toggle")

	uid, err := userID(c)
	if err != nil {
		l.Warn("toggle_favorite_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("toggle_favorite_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	liked, err := h.Svc.Toggle(ctx, uid, productID)
	if err != nil {
		l.Error("toggle_favorite_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot toggle favorite")
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "liked": liked})
}

func (h *FavoriteHTTP) Status(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.status")

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("favorite_status_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	status, err := h.Svc.Status(ctx, optionalUserID(c), productID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("favorite_status_failed", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("favorite_status_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get favorite status")
	}

	return c.JSON(http.StatusOK, status)
}

func (h *FavoriteHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.list")

	uid, err := userID(c)
	if err != nil {
		l.Warn("list_favorites_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	products, err := h.Svc.ListProducts(ctx, uid)
	if err != nil {
		l.Error("list_favorites_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list favorites")
	}

	return c.JSON(http.StatusOK, products)
}
