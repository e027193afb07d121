package repo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/woodharbor/slabstore/internal/models"
)

func createSlab(t *testing.T, r *GormRepo, sku string, price float64, specs datatypes.JSONMap) *models.Product {
	t.Helper()

	p := models.Product{
		Name:   "slab " + sku,
		SKU:    sku,
		Price:  decimal.NewFromFloat(price),
		Status: models.ProductAvailable,
		Specs:  specs,
	}
	require.NoError(t, r.DB.Create(&p).Error)
	return &p
}

func TestListProducts_SKUPrefixSplitsCategories(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	createSlab(t, r, "WOODSLABS-001", 1000, nil)
	createSlab(t, r, "WOODSLABS-002", 2000, nil)
	createSlab(t, r, "ROUGH-001", 300, nil)

	total, items, err := r.ListProducts(ctx, ProductFilter{SKUPrefix: models.SKUPrefixSlabs}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	total, _, err = r.ListProducts(ctx, ProductFilter{SKUPrefix: models.SKUPrefixRough}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestListProducts_SpecAndRangeFilters(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	createSlab(t, r, "WOODSLABS-010", 1000, datatypes.JSONMap{
		"material": "walnut", "length_cm": 240.0,
	})
	createSlab(t, r, "WOODSLABS-011", 5000, datatypes.JSONMap{
		"material": "walnut", "length_cm": 120.0,
	})
	createSlab(t, r, "WOODSLABS-012", 1500, datatypes.JSONMap{
		"material": "oak", "length_cm": 200.0,
	})

	total, items, err := r.ListProducts(ctx, ProductFilter{
		SKUPrefix: models.SKUPrefixSlabs,
		Material:  "walnut",
	}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)

	lengthMin := 200.0
	total, items, err = r.ListProducts(ctx, ProductFilter{
		SKUPrefix: models.SKUPrefixSlabs,
		Material:  "walnut",
		LengthMin: &lengthMin,
	}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "WOODSLABS-010", items[0].SKU)

	priceMax := 2000.0
	total, _, err = r.ListProducts(ctx, ProductFilter{
		SKUPrefix: models.SKUPrefixSlabs,
		PriceMax:  &priceMax,
	}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestListProducts_StatusFilter(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	open := createSlab(t, r, "WOODSLABS-020", 1000, nil)
	taken := createSlab(t, r, "WOODSLABS-021", 1000, nil)
	require.NoError(t, r.SetStatus(ctx, taken.ID, models.ProductReserved))

	total, items, err := r.ListProducts(ctx, ProductFilter{
		SKUPrefix: models.SKUPrefixSlabs,
		Statuses:  []string{models.ProductAvailable, models.ProductActive},
	}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, open.ID, items[0].ID)
}

func TestRecommend_SharedFacetsThenFallback(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	current := createSlab(t, r, "WOODSLABS-030", 1000, datatypes.JSONMap{"material": "walnut"})
	match := createSlab(t, r, "WOODSLABS-031", 1200, datatypes.JSONMap{"material": "walnut"})
	createSlab(t, r, "ROUGH-032", 300, datatypes.JSONMap{"material": "walnut"})

	items, err := r.Recommend(ctx, current.ID, models.SKUPrefixSlabs, "", "walnut", "", 8)
	require.NoError(t, err)
	require.Len(t, items, 1, "the current product and other categories stay out")
	assert.Equal(t, match.ID, items[0].ID)

	// No facet match inside the category falls back to newest in category.
	items, err = r.Recommend(ctx, current.ID, models.SKUPrefixSlabs, "", "teak", "", 8)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, match.ID, items[0].ID)
}

func TestMinMax_PriceBounds(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	createSlab(t, r, "WOODSLABS-040", 500, nil)
	createSlab(t, r, "WOODSLABS-041", 2500, nil)

	min, max, err := r.MinMax(ctx, "price", models.SKUPrefixSlabs)
	require.NoError(t, err)
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.InDelta(t, 500, *min, 0.001)
	assert.InDelta(t, 2500, *max, 0.001)
}

func TestMinMax_UnknownColumnRejected(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	_, _, err := r.MinMax(context.Background(), "name; DROP TABLE products", models.SKUPrefixSlabs)
	assert.Error(t, err)
}

func TestDistinctSpecOptions(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	createSlab(t, r, "WOODSLABS-050", 1000, datatypes.JSONMap{
		"spec_type": "dining", "material": "walnut", "panel_craft": "bookmatch",
	})
	createSlab(t, r, "WOODSLABS-051", 1000, datatypes.JSONMap{
		"spec_type": "bench", "material": "walnut",
	})

	opts, err := r.DistinctSpecOptions(ctx, models.SKUPrefixSlabs, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"bench", "dining"}, opts.Type)
	assert.Equal(t, []string{"walnut"}, opts.Material)
	assert.Equal(t, []string{"bookmatch"}, opts.Panel)
}
