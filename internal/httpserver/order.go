package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/woodharbor/slabstore/internal/service"
	"github.com/woodharbor/slabstore/internal/transport"
	"github.com/woodharbor/slabstore/internal/util"
	"github.com/woodharbor/slabstore/pkg/logging"
)

type OrderHTTP struct {
	Reservations *service.ReservationService
	Discounts    *service.DiscountService
}

// CreateDeposit starts the PromptPay deposit flow. Failures come back as
// {success:false, message} so the storefront can show them inline while
// keeping the product purchasable.
func (h *OrderHTTP) CreateDeposit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_deposit")

	uid, err := userID(c)
	if err != nil {
		l.Warn("create_deposit_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("create_deposit_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	qr, err := h.Reservations.CreateDeposit(ctx, uid, userEmail(c), productID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("create_deposit_failed", "reason", "product not found")
			return c.JSON(http.StatusOK, transport.DepositResult{Success: false, Message: "Product not found"})
		case errors.Is(err, service.ErrDuplicateOrder):
			l.Warn("create_deposit_failed", "reason", "pending deposit exists")
			return c.JSON(http.StatusOK, transport.DepositResult{Success: false, Message: "A deposit for this product is already pending"})
		default:
			l.Error("create_deposit_failed", "error", err)
			return c.JSON(http.StatusOK, transport.DepositResult{Success: false, Message: err.Error()})
		}
	}

	l.Info("create_deposit_success", "charge_id", qr.ChargeID)
	return c.JSON(http.StatusOK, transport.DepositResult{
		Success:  true,
		QRImage:  qr.QRImageURL,
		ChargeID: qr.ChargeID,
	})
}

// CheckDeposit is the poll target while the QR modal is open. Provider
// hiccups surface as "still waiting" so the client just retries.
func (h *OrderHTTP) CheckDeposit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.check_deposit")

	uid, err := userID(c)
	if err != nil {
		l.Warn("check_deposit_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("check_deposit_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	paid, message, err := h.Reservations.CheckDeposit(ctx, uid, productID)
	if err != nil {
		l.Error("check_deposit_failed", "error", err)
		return c.JSON(http.StatusOK, transport.DepositResult{Success: false, Message: "Still waiting..."})
	}

	return c.JSON(http.StatusOK, transport.DepositResult{Success: paid, Message: message})
}

// EvaluateDiscount previews the discount a product would get right now.
func (h *OrderHTTP) EvaluateDiscount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.evaluate_discount")

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("evaluate_discount_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	snapshot, err := h.Discounts.Evaluate(ctx, productID)
	if err != nil {
		l.Error("evaluate_discount_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot evaluate discount")
	}

	return c.JSON(http.StatusOK, map[string]any{"discount": transport.NewDiscountPreview(snapshot)})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	uid, err := userID(c)
	if err != nil {
		l.Warn("list_orders_failed", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	status := c.QueryParam("status")
	if status == "" {
		status = "deposit_paid"
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, err := h.Reservations.ListOrders(ctx, uid, status, limit, offset)
	if err != nil {
		l.Error("list_orders_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": orders})
}
