package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woodharbor/slabstore/internal/models"
)

// ToggleFavorite likes or unlikes a product and keeps the denormalized
// favorite_count in step, all inside one transaction. The unique index on
// (user, product) guards against a double-insert race.
func (r *GormRepo) ToggleFavorite(ctx context.Context, userID, productID uuid.UUID) (liked bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			liked = false
			return tx.Model(&models.Product{}).
				Where("id = ?", productID).
				Update("favorite_count", gorm.Expr("CASE WHEN favorite_count > 0 THEN favorite_count - 1 ELSE 0 END")).Error
		}

		fav := models.Favorite{UserID: userID, ProductID: productID}
		if err := tx.Create(&fav).Error; err != nil {
			return err
		}
		liked = true
		return tx.Model(&models.Product{}).
			Where("id = ?", productID).
			Update("favorite_count", gorm.Expr("favorite_count + 1")).Error
	})
	return liked, err
}

func (r *GormRepo) FavoriteStatus(ctx context.Context, userID *uuid.UUID, productID uuid.UUID) (count int, liked bool, err error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Select("id", "favorite_count").
		Where("id = ?", productID).First(&product).Error; err != nil {
		return 0, false, err
	}

	if userID != nil {
		var n int64
		if err := r.DB.WithContext(ctx).Model(&models.Favorite{}).
			Where("user_id = ? AND product_id = ?", *userID, productID).
			Count(&n).Error; err != nil {
			return 0, false, err
		}
		liked = n > 0
	}

	return product.FavoriteCount, liked, nil
}

func (r *GormRepo) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}
