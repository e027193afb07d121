package repo

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woodharbor/slabstore/internal/models"
)

// ProductFilter holds the faceted-listing filters. Zero values mean "not
// filtered". Statuses is the resolved raw-status set for the requested
// display bucket.
type ProductFilter struct {
	SKUPrefix string
	SpecType  string
	Material  string
	Panel     string
	Statuses  []string

	LengthMin, LengthMax       *float64
	WidthMin, WidthMax         *float64
	ThicknessMin, ThicknessMax *float64
	PriceMin, PriceMax         *float64

	Query string
}

// Numeric columns exposed to range filters and sliders. Keys are validated
// against this map before they get near SQL.
var rangeColumns = map[string]string{
	"price":        "price",
	"length_cm":    "CAST(specs->>'length_cm' AS numeric)",
	"width_cm":     "CAST(specs->>'width_cm' AS numeric)",
	"thickness_cm": "CAST(specs->>'thickness_cm' AS numeric)",
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Preload("Stock").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter, offset, limit int) (int64, []models.Product, error) {
	q := r.filteredQuery(ctx, f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := q.Preload("Stock").
		Order("status ASC").
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) filteredQuery(ctx context.Context, f ProductFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&models.Product{})

	if f.SKUPrefix != "" {
		q = q.Where("sku LIKE ?", f.SKUPrefix+"%")
	}
	if f.SpecType != "" {
		q = q.Where("specs->>'spec_type' = ?", f.SpecType)
	}
	if f.Material != "" {
		q = q.Where("specs->>'material' = ?", f.Material)
	}
	if f.Panel != "" {
		q = q.Where("specs->>'panel_craft' = ?", f.Panel)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	q = rangeWhere(q, rangeColumns["length_cm"], f.LengthMin, f.LengthMax)
	q = rangeWhere(q, rangeColumns["width_cm"], f.WidthMin, f.WidthMax)
	q = rangeWhere(q, rangeColumns["thickness_cm"], f.ThicknessMin, f.ThicknessMax)
	q = rangeWhere(q, "price", f.PriceMin, f.PriceMax)

	if f.Query != "" {
		needle := "%" + strings.ReplaceAll(f.Query, ",", " ") + "%"
		q = q.Where("name ILIKE ? OR barcode ILIKE ? OR sku ILIKE ?", needle, needle, needle)
	}

	return q
}

func rangeWhere(q *gorm.DB, expr string, min, max *float64) *gorm.DB {
	if min != nil {
		q = q.Where(expr+" >= ?", *min)
	}
	if max != nil {
		q = q.Where(expr+" <= ?", *max)
	}
	return q
}

// Recommend finds products sharing the given spec facets within the same
// category, newest first; when nothing matches it falls back to the newest
// products in the category.
func (r *GormRepo) Recommend(ctx context.Context, currentID uuid.UUID, skuPrefix, specType, material, panel string, limit int) ([]models.Product, error) {
	base := func() *gorm.DB {
		return r.DB.WithContext(ctx).Model(&models.Product{}).
			Where("sku LIKE ?", skuPrefix+"%").
			Where("id <> ?", currentID).
			Order("updated_at DESC").
			Limit(limit)
	}

	q := base()
	if specType != "" {
		q = q.Where("specs->>'spec_type' = ?", specType)
	}
	if material != "" {
		q = q.Where("specs->>'material' = ?", material)
	}
	if panel != "" {
		q = q.Where("specs->>'panel_craft' = ?", panel)
	}

	var items []models.Product
	if err := q.Preload("Stock").Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}

	if err := base().Preload("Stock").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// MinMax returns the bounds of a numeric column for slider widgets. The
// column name must be one of rangeColumns.
func (r *GormRepo) MinMax(ctx context.Context, column, skuPrefix string) (min, max *float64, err error) {
	expr, ok := rangeColumns[column]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported range column %q", column)
	}

	row := r.DB.WithContext(ctx).Model(&models.Product{}).
		Select(fmt.Sprintf("MIN(%s), MAX(%s)", expr, expr)).
		Where("sku LIKE ?", skuPrefix+"%").
		Row()

	var lo, hi sql.NullFloat64
	if err := row.Scan(&lo, &hi); err != nil {
		return nil, nil, err
	}
	if lo.Valid {
		min = &lo.Float64
	}
	if hi.Valid {
		max = &hi.Float64
	}
	return min, max, nil
}

// RangeValues returns the raw values of a numeric column for histogram
// rendering, capped at limit rows.
func (r *GormRepo) RangeValues(ctx context.Context, column, skuPrefix string, limit int) ([]float64, error) {
	expr, ok := rangeColumns[column]
	if !ok {
		return nil, fmt.Errorf("unsupported range column %q", column)
	}

	rows, err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Select(expr).
		Where("sku LIKE ?", skuPrefix+"%").
		Where(expr + " IS NOT NULL").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v sql.NullFloat64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v.Valid {
			out = append(out, v.Float64)
		}
	}
	return out, rows.Err()
}

// SpecOptions are the distinct dropdown values discovered from the spec bags
// of a category.
type SpecOptions struct {
	Type     []string `json:"type"`
	Material []string `json:"material"`
	Panel    []string `json:"panel"`
}

func (r *GormRepo) DistinctSpecOptions(ctx context.Context, skuPrefix string, limit int) (*SpecOptions, error) {
	var products []models.Product
	if err := r.DB.WithContext(ctx).
		Select("id", "specs").
		Where("sku LIKE ?", skuPrefix+"%").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}

	types := map[string]struct{}{}
	materials := map[string]struct{}{}
	panels := map[string]struct{}{}
	for i := range products {
		specs := products[i].Specs
		addSpec(types, specs, "spec_type")
		addSpec(materials, specs, "material")
		addSpec(panels, specs, "panel_craft")
	}

	return &SpecOptions{
		Type:     sortedKeys(types),
		Material: sortedKeys(materials),
		Panel:    sortedKeys(panels),
	}, nil
}

func addSpec(set map[string]struct{}, specs map[string]any, key string) {
	if v, ok := specs[key].(string); ok && v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetStatus flips the raw product status.
func (r *GormRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Reserve transitions a product to pending and sets the legacy spec flag.
// The update is conditional on the product still being available, so two
// concurrent pollers cannot both reserve it.
func (r *GormRepo) Reserve(ctx context.Context, id uuid.UUID) (bool, error) {
	reserved := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			return err
		}

		specs := product.Specs
		if specs == nil {
			specs = map[string]any{}
		}
		specs[models.SpecPendingKey] = true

		res := tx.Model(&models.Product{}).
			Where("id = ? AND status IN ?", id, []string{models.ProductAvailable, models.ProductActive}).
			Updates(map[string]any{
				"status": models.ProductPending,
				"specs":  specs,
			})
		if res.Error != nil {
			return res.Error
		}
		reserved = res.RowsAffected > 0
		return nil
	})
	return reserved, err
}
