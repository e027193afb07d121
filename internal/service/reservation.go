package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/woodharbor/slabstore/internal/events"
	"github.com/woodharbor/slabstore/internal/models"
	"github.com/woodharbor/slabstore/internal/payment"
	"github.com/woodharbor/slabstore/internal/repo"
	"github.com/woodharbor/slabstore/internal/search"
	"github.com/woodharbor/slabstore/pkg/logging"
)

// The deposit is a flat booking fee, deliberately decoupled from the item
// price. Omise amounts are in satang.
const (
	DepositAmountTHB    = 100
	depositAmountSatang = 10000
)

type DepositQR struct {
	QRImageURL string
	ChargeID   string
}

type ReservationService struct {
	Repo      *repo.GormRepo
	Gateway   payment.Gateway
	Discounts *DiscountService

	// Optional collaborators; nil disables them.
	Producer *events.Producer
	Search   *search.Index

	// BaseURL of the storefront, for the post-payment return link.
	BaseURL string
}

// CreateDeposit starts a fixed-amount deposit payment for one unit of a
// product. The order row is only written after the charge exists and its QR
// image URL has been extracted, so a gateway failure can never leave an
// orphaned waiting_payment row.
func (s *ReservationService) CreateDeposit(ctx context.Context, userID uuid.UUID, email string, productID uuid.UUID) (*DepositQR, error) {
	l := logging.FromContext(ctx).With("svc", "reservation.create_deposit", "product_id", productID)

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}

	pending, err := s.Repo.HasPendingOrder(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicateOrder
	}

	snapshot, err := s.Discounts.EvaluateForPrice(ctx, productID, product.Price)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Deposit: %s (User: %s)", product.SKU, email)
	returnURI := fmt.Sprintf("%s/woodslab/product?id=%s", s.BaseURL, productID)

	charge, err := s.Gateway.CreatePromptPayCharge(ctx, depositAmountSatang, description, returnURI)
	if err != nil {
		return nil, err
	}
	if charge.QRImageURL == "" {
		return nil, ErrQRUnavailable
	}

	snapshotMap := datatypes.JSONMap{}
	if snapshot != nil {
		snapshotMap = snapshot.JSONMap()
	}

	order := models.Order{
		UserID:           userID,
		ProductID:        productID,
		Amount:           decimal.NewFromInt(DepositAmountTHB),
		Status:           models.OrderWaitingPayment,
		PaymentID:        charge.ID,
		OriginalPrice:    product.Price,
		DiscountSnapshot: snapshotMap,
	}
	if err := s.Repo.CreateOrder(ctx, &order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicOrderEvents, order.ID.String(), map[string]any{
		"type":       "deposit_created",
		"order_id":   order.ID,
		"product_id": productID,
		"user_id":    userID,
		"charge_id":  charge.ID,
	})

	l.Info("deposit_created", "order_id", order.ID, "charge_id", charge.ID)
	return &DepositQR{QRImageURL: charge.QRImageURL, ChargeID: charge.ID}, nil
}

// CheckDeposit asks the gateway for the status of every waiting deposit this
// user holds on the product and settles the first one found paid: the order
// flips to deposit_paid and the product is conditionally reserved. Designed
// to be polled; already-paid orders drop out of the candidate set, so
// re-invocation is a no-op.
func (s *ReservationService) CheckDeposit(ctx context.Context, userID, productID uuid.UUID) (bool, string, error) {
	l := logging.FromContext(ctx).With("svc", "reservation.check_deposit", "product_id", productID)

	orders, err := s.Repo.PendingOrders(ctx, userID, productID)
	if err != nil {
		return false, "", err
	}
	if len(orders) == 0 {
		return false, "No pending orders", nil
	}

	for i := range orders {
		order := &orders[i]
		if order.PaymentID == "" {
			continue
		}

		charge, err := s.Gateway.RetrieveCharge(ctx, order.PaymentID)
		if err != nil {
			// Provider hiccups are retried on the next poll.
			l.Warn("charge_check_failed", "charge_id", order.PaymentID, "error", err)
			continue
		}
		if charge.Status != payment.StatusSuccessful {
			continue
		}

		marked, err := s.Repo.MarkPaid(ctx, order.ID)
		if err != nil {
			return false, "", err
		}
		if !marked {
			// Another poller settled this order first.
			continue
		}

		reserved, err := s.Repo.Reserve(ctx, productID)
		if err != nil {
			return false, "", err
		}
		if !reserved {
			l.Warn("product_not_reserved", "order_id", order.ID, "reason", "status no longer available")
		}

		s.publish(ctx, events.TopicOrderEvents, order.ID.String(), map[string]any{
			"type":       "deposit_paid",
			"order_id":   order.ID,
			"product_id": productID,
			"user_id":    userID,
		})
		s.publish(ctx, events.TopicProductEvents, productID.String(), map[string]any{
			"type":       "product_reserved",
			"product_id": productID,
		})
		s.reindex(ctx, productID)

		l.Info("deposit_paid", "order_id", order.ID)
		return true, "Payment confirmed!", nil
	}

	return false, "Still waiting...", nil
}

func (s *ReservationService) ListOrders(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, status, limit, offset)
}

func (s *ReservationService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	if err := s.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "error", err)
	}
}

func (s *ReservationService) reindex(ctx context.Context, productID uuid.UUID) {
	if s.Search == nil {
		return
	}
	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		logging.FromContext(ctx).Warn("reindex_load_failed", "product_id", productID, "error", err)
		return
	}
	if err := s.Search.IndexProduct(ctx, product); err != nil {
		logging.FromContext(ctx).Warn("reindex_failed", "product_id", productID, "error", err)
	}
}
