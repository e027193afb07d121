package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woodharbor/slabstore/internal/models"
	"github.com/woodharbor/slabstore/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, item *models.CartItem) error {
	if item.ProductID == uuid.Nil {
		return fmt.Errorf("product_id required: %w", ErrValidation)
	}
	if item.Quantity == 0 {
		return fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}
	return s.Repo.AddToCart(ctx, item)
}

// SetQuantity returns the updated item, or nil when the quantity dropped to
// zero and the row was removed.
func (s *CartService) SetQuantity(ctx context.Context, itemID, userID uuid.UUID, quantity int) (*models.CartItem, error) {
	item, err := s.Repo.SetQuantity(ctx, itemID, userID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart item: %w", ErrNotFound)
	}
	return item, err
}

func (s *CartService) RemoveItem(ctx context.Context, itemID, userID uuid.UUID) error {
	err := s.Repo.RemoveCartItem(ctx, itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("cart item: %w", ErrNotFound)
	}
	return err
}
