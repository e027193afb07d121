package repo

import (
	"context"

	"github.com/woodharbor/slabstore/internal/models"
)

// ActiveDiscounts returns every active discount with its rules preloaded.
// Date-window filtering happens in the domain layer so unbounded (NULL)
// dates are handled in one place.
func (r *GormRepo) ActiveDiscounts(ctx context.Context) ([]models.Discount, error) {
	var discounts []models.Discount
	if err := r.DB.WithContext(ctx).
		Preload("Rules").
		Where("active = ?", true).
		Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}
