package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/woodharbor/slabstore/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) HasPendingOrder(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ? AND product_id = ? AND status = ?", userID, productID, models.OrderWaitingPayment).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) PendingOrders(ctx context.Context, userID, productID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND status = ?", userID, productID, models.OrderWaitingPayment).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkPaid flips an order to deposit_paid. The update is conditional on the
// order still waiting, so re-processing an already-paid order is a no-op.
func (r *GormRepo) MarkPaid(ctx context.Context, orderID uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderWaitingPayment).
		Update("status", models.OrderDepositPaid)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Preload("Product").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
