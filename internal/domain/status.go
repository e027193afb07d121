package domain

import (
	"github.com/woodharbor/slabstore/internal/models"
)

// DisplayStatus is the bucket the storefront shows for a product. Every
// consumer (listing, detail, recommendations) must derive it through
// EffectiveStatus so the same product never shows two different states.
type DisplayStatus string

const (
	StatusAvailable DisplayStatus = "available"
	StatusPending   DisplayStatus = "pending"
	StatusSold      DisplayStatus = "sold"
	StatusDraft     DisplayStatus = "draft"
)

// StatusBuckets maps a filter bucket to the raw statuses it covers.
var StatusBuckets = map[string][]string{
	"available": {models.ProductAvailable, models.ProductActive},
	"pending":   {models.ProductPending, models.ProductReserved, models.ProductHold, models.ProductOnRequest},
	"sold":      {models.ProductSold, models.ProductArchived, models.ProductInactive},
	"draft":     {models.ProductDraft},
}

// TotalStock sums the product's stock entries.
func TotalStock(entries []models.StockEntry) int {
	total := 0
	for i := range entries {
		total += entries[i].Quantity
	}
	return total
}

// EffectiveStatus derives the displayed status. Precedence: an exhausted
// stock ledger wins, then the raw status enum, and the legacy specs "pending"
// flag only overrides a product that still claims to be available. The enum
// is authoritative everywhere else; the flag survives for older storefront
// builds and goes away once they are migrated.
func EffectiveStatus(p *models.Product) DisplayStatus {
	if len(p.Stock) > 0 && TotalStock(p.Stock) <= 0 {
		return StatusSold
	}

	bucket := rawBucket(p.Status)

	if bucket == StatusAvailable && legacyPending(p.Specs) {
		return StatusPending
	}
	return bucket
}

func rawBucket(status string) DisplayStatus {
	for bucket, raws := range StatusBuckets {
		for _, s := range raws {
			if s == status {
				return DisplayStatus(bucket)
			}
		}
	}
	// Unknown statuses are kept off the shelf rather than shown as buyable.
	return StatusDraft
}

func legacyPending(specs map[string]any) bool {
	v, ok := specs[models.SpecPendingKey]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
