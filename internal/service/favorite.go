package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woodharbor/slabstore/internal/repo"
	"github.com/woodharbor/slabstore/internal/transport"
)

type FavoriteService struct {
	Repo *repo.GormRepo
}

func (s *FavoriteService) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	return s.Repo.ToggleFavorite(ctx, userID, productID)
}

// Status works for anonymous visitors too: userID nil means only the public
// count is reported.
func (s *FavoriteService) Status(ctx context.Context, userID *uuid.UUID, productID uuid.UUID) (*transport.FavoriteStatusResponse, error) {
	count, liked, err := s.Repo.FavoriteStatus(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product: %w", ErrNotFound)
		}
		return nil, err
	}
	return &transport.FavoriteStatusResponse{
		Count:    count,
		Liked:    liked,
		LoggedIn: userID != nil,
	}, nil
}

func (s *FavoriteService) ListProducts(ctx context.Context, userID uuid.UUID) ([]transport.ProductView, error) {
	favorites, err := s.Repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]transport.ProductView, 0, len(favorites))
	for i := range favorites {
		if favorites[i].Product.ID == uuid.Nil {
			continue
		}
		views = append(views, transport.NewProductView(favorites[i].Product))
	}
	return views, nil
}
