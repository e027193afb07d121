package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/woodharbor/slabstore/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// Snapshot captures everything about a discount calculation at the moment it
// was applied, so the order keeps an audit-correct record even after the
// discount record changes or expires.
type Snapshot struct {
	AppliedAt       time.Time       `json:"applied_at"`
	DiscountID      uuid.UUID       `json:"discount_id"`
	DiscountName    string          `json:"discount_name"`
	DiscountCode    string          `json:"discount_code"`
	DiscountType    string          `json:"discount_type"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	RuleID          *uuid.UUID      `json:"rule_id"`
	RuleMinSubtotal decimal.Decimal `json:"rule_min_subtotal"`
	RuleProductID   *uuid.UUID      `json:"rule_product_specific"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	Saving          decimal.Decimal `json:"saving_amount"`
	FinalPrice      decimal.Decimal `json:"final_price"`
}

// JSONMap renders the snapshot in the denormalized shape stored on the order
// row. Money fields are stored as plain JSON numbers.
func (s *Snapshot) JSONMap() datatypes.JSONMap {
	m := datatypes.JSONMap{
		"applied_at":            s.AppliedAt.UTC().Format(time.RFC3339),
		"discount_id":           s.DiscountID.String(),
		"discount_name":         s.DiscountName,
		"discount_code":         s.DiscountCode,
		"discount_type":         s.DiscountType,
		"discount_value":        s.DiscountValue.InexactFloat64(),
		"rule_id":               nil,
		"rule_min_subtotal":     s.RuleMinSubtotal.InexactFloat64(),
		"rule_product_specific": nil,
		"original_price":        s.OriginalPrice.InexactFloat64(),
		"saving_amount":         s.Saving.InexactFloat64(),
		"final_price":           s.FinalPrice.InexactFloat64(),
	}
	if s.RuleID != nil {
		m["rule_id"] = s.RuleID.String()
	}
	if s.RuleProductID != nil {
		m["rule_product_specific"] = s.RuleProductID.String()
	}
	return m
}

// BestDiscount picks the single best-saving discount applicable to the
// product at the given price and time, or nil when none applies. It is a pure
// function over the candidate slice and safe to call repeatedly.
//
// Equal savings are broken deterministically in favor of the smallest
// discount ID.
func BestDiscount(productID uuid.UUID, price decimal.Decimal, now time.Time, candidates []models.Discount) *Snapshot {
	var best *Snapshot

	for i := range candidates {
		d := &candidates[i]
		if !d.Active {
			continue
		}
		if d.StartDate != nil && d.StartDate.After(now) {
			continue
		}
		if d.EndDate != nil && d.EndDate.Before(now) {
			continue
		}

		matched, rule := matchRule(d.Rules, productID, price)
		if !matched {
			continue
		}

		saving := computeSaving(d.Type, d.Value, price)
		if !saving.IsPositive() {
			continue
		}

		if best != nil {
			if saving.LessThan(best.Saving) {
				continue
			}
			if saving.Equal(best.Saving) && d.ID.String() >= best.DiscountID.String() {
				continue
			}
		}

		snap := &Snapshot{
			AppliedAt:     now,
			DiscountID:    d.ID,
			DiscountName:  d.Name,
			DiscountCode:  d.Code,
			DiscountType:  d.Type,
			DiscountValue: d.Value,
			OriginalPrice: price,
			Saving:        saving,
			FinalPrice:    price.Sub(saving),
		}
		if rule != nil {
			id := rule.ID
			snap.RuleID = &id
			snap.RuleMinSubtotal = rule.MinSubtotal
			if rule.ProductID != nil {
				pid := *rule.ProductID
				snap.RuleProductID = &pid
			}
		}
		best = snap
	}

	return best
}

// matchRule reports eligibility. A discount without rules is universal;
// otherwise at least one rule must match: no product restriction or the same
// product, and price at or above the rule's minimum subtotal.
func matchRule(rules []models.DiscountRule, productID uuid.UUID, price decimal.Decimal) (bool, *models.DiscountRule) {
	if len(rules) == 0 {
		return true, nil
	}
	for i := range rules {
		r := &rules[i]
		if r.ProductID != nil && *r.ProductID != productID {
			continue
		}
		if price.LessThan(r.MinSubtotal) {
			continue
		}
		return true, r
	}
	return false, nil
}

// computeSaving clamps to price so a discount can never push the effective
// price below zero. Unknown types are treated as FIXED.
func computeSaving(discountType string, value, price decimal.Decimal) decimal.Decimal {
	var saving decimal.Decimal
	if discountType == models.DiscountTypePercent {
		saving = price.Mul(value).Div(oneHundred)
	} else {
		saving = value
	}
	if saving.GreaterThan(price) {
		saving = price
	}
	return saving
}
