package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/woodharbor/slabstore/internal/domain"
	"github.com/woodharbor/slabstore/internal/repo"
)

type DiscountService struct {
	Repo *repo.GormRepo
}

// Evaluate returns the best currently-applicable discount snapshot for a
// product, or nil when nothing applies. Pure read; calling it twice with
// unchanged data yields the same result.
func (s *DiscountService) Evaluate(ctx context.Context, productID uuid.UUID) (*domain.Snapshot, error) {
	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.EvaluateForPrice(ctx, productID, product.Price)
}

// EvaluateForPrice skips the product lookup when the caller already holds
// the price, as the deposit flow does.
func (s *DiscountService) EvaluateForPrice(ctx context.Context, productID uuid.UUID, price decimal.Decimal) (*domain.Snapshot, error) {
	candidates, err := s.Repo.ActiveDiscounts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BestDiscount(productID, price, time.Now().UTC(), candidates), nil
}
