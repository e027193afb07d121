package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/woodharbor/slabstore/internal/domain"
	"github.com/woodharbor/slabstore/internal/models"
	"github.com/woodharbor/slabstore/internal/repo"
	"github.com/woodharbor/slabstore/internal/transport"
)

const (
	CategorySlabs = "slabs"
	CategoryRough = "rough"

	recommendLimit     = 8
	specScanLimit      = 3000
	histogramScanLimit = 2000
)

// SKUPrefix maps a catalog category to its SKU namespace.
func SKUPrefix(category string) string {
	if category == CategoryRough {
		return models.SKUPrefixRough
	}
	return models.SKUPrefixSlabs
}

type CatalogService struct {
	Repo *repo.GormRepo
}

// ListQuery mirrors the storefront's filter panel.
type ListQuery struct {
	Category     string
	StatusBucket string // "", "all" or a display bucket
	Filter       repo.ProductFilter
}

func (s *CatalogService) ListProducts(ctx context.Context, q ListQuery, offset, limit int) (int64, []transport.ProductView, error) {
	f := q.Filter
	f.SKUPrefix = SKUPrefix(q.Category)

	if q.StatusBucket != "" && q.StatusBucket != "all" {
		raws, ok := domain.StatusBuckets[q.StatusBucket]
		if !ok {
			return 0, nil, fmt.Errorf("%w: unknown status bucket %q", ErrValidation, q.StatusBucket)
		}
		f.Statuses = raws
	}

	total, items, err := s.Repo.ListProducts(ctx, f, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	return total, transport.NewProductViews(items), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*transport.ProductView, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	view := transport.NewProductView(*product)
	return &view, nil
}

func (s *CatalogService) Recommendations(ctx context.Context, id uuid.UUID) ([]transport.ProductView, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	category := CategorySlabs
	if len(product.SKU) >= len(models.SKUPrefixRough) && product.SKU[:len(models.SKUPrefixRough)] == models.SKUPrefixRough {
		category = CategoryRough
	}

	specType, _ := product.Specs["spec_type"].(string)
	material, _ := product.Specs["material"].(string)
	panel, _ := product.Specs["panel_craft"].(string)

	items, err := s.Repo.Recommend(ctx, id, SKUPrefix(category), specType, material, panel, recommendLimit)
	if err != nil {
		return nil, err
	}
	return transport.NewProductViews(items), nil
}

// FilterOptions aggregates everything the filter panel needs in one call:
// dropdown values, slider bounds and histogram samples.
type FilterOptions struct {
	Options *repo.SpecOptions              `json:"options"`
	Bounds  map[string]map[string]*float64 `json:"bounds"`
	Values  map[string][]float64           `json:"values"`
}

func (s *CatalogService) FilterOptions(ctx context.Context, category string) (*FilterOptions, error) {
	prefix := SKUPrefix(category)

	options, err := s.Repo.DistinctSpecOptions(ctx, prefix, specScanLimit)
	if err != nil {
		return nil, err
	}

	out := &FilterOptions{
		Options: options,
		Bounds:  map[string]map[string]*float64{},
		Values:  map[string][]float64{},
	}
	for _, col := range []string{"price", "length_cm", "width_cm", "thickness_cm"} {
		min, max, err := s.Repo.MinMax(ctx, col, prefix)
		if err != nil {
			return nil, err
		}
		out.Bounds[col] = map[string]*float64{"min": min, "max": max}

		values, err := s.Repo.RangeValues(ctx, col, prefix, histogramScanLimit)
		if err != nil {
			return nil, err
		}
		out.Values[col] = values
	}
	return out, nil
}

// RequestPurchase flags a product as requested, the pre-deposit inquiry
// path for on-request items.
func (s *CatalogService) RequestPurchase(ctx context.Context, id uuid.UUID) error {
	return s.Repo.SetStatus(ctx, id, models.ProductOnRequest)
}
