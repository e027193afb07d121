package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodharbor/slabstore/internal/models"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func activeDiscount(name, dtype string, value float64) models.Discount {
	return models.Discount{
		ID:     uuid.New(),
		Name:   name,
		Type:   dtype,
		Value:  dec(value),
		Active: true,
	}
}

func TestBestDiscount_PercentOfPrice(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	d := activeDiscount("spring sale", models.DiscountTypePercent, 10)

	snap := BestDiscount(uuid.New(), dec(1000), now, []models.Discount{d})
	require.NotNil(t, snap)

	assert.True(t, snap.Saving.Equal(dec(100)), "saving = %s", snap.Saving)
	assert.True(t, snap.FinalPrice.Equal(dec(900)), "final = %s", snap.FinalPrice)
	assert.Equal(t, d.ID, snap.DiscountID)
	assert.True(t, snap.OriginalPrice.Equal(dec(1000)))
}

func TestBestDiscount_FixedClampedToPrice(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	d := activeDiscount("clearance", models.DiscountTypeFixed, 1000)

	snap := BestDiscount(uuid.New(), dec(500), now, []models.Discount{d})
	require.NotNil(t, snap)

	assert.True(t, snap.Saving.Equal(dec(500)), "saving = %s", snap.Saving)
	assert.True(t, snap.FinalPrice.IsZero(), "final = %s", snap.FinalPrice)
}

func TestBestDiscount_MinSubtotalNotMet(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	d := activeDiscount("big spender", models.DiscountTypePercent, 10)
	d.Rules = []models.DiscountRule{{
		ID:          uuid.New(),
		DiscountID:  d.ID,
		MinSubtotal: dec(2000),
	}}

	snap := BestDiscount(uuid.New(), dec(1500), now, []models.Discount{d})
	assert.Nil(t, snap)
}

func TestBestDiscount_PicksLargestSaving(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	small := activeDiscount("small", models.DiscountTypeFixed, 50)
	big := activeDiscount("big", models.DiscountTypeFixed, 120)

	snap := BestDiscount(uuid.New(), dec(1000), now, []models.Discount{small, big})
	require.NotNil(t, snap)

	assert.Equal(t, big.ID, snap.DiscountID)
	assert.True(t, snap.Saving.Equal(dec(120)))
}

func TestBestDiscount_EqualSavingTieBreakIsDeterministic(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	a := activeDiscount("a", models.DiscountTypeFixed, 100)
	b := activeDiscount("b", models.DiscountTypeFixed, 100)

	want := a.ID
	if b.ID.String() < a.ID.String() {
		want = b.ID
	}

	first := BestDiscount(uuid.New(), dec(1000), now, []models.Discount{a, b})
	second := BestDiscount(uuid.New(), dec(1000), now, []models.Discount{b, a})
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.Equal(t, want, first.DiscountID)
	assert.Equal(t, first.DiscountID, second.DiscountID)
}

func TestBestDiscount_DateWindow(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name   string
		start  *time.Time
		end    *time.Time
		wantOK bool
	}{
		{name: "no window", wantOK: true},
		{name: "inside window", start: &past, end: &future, wantOK: true},
		{name: "expired", end: &past, wantOK: false},
		{name: "not started", start: &future, wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := activeDiscount("windowed", models.DiscountTypePercent, 10)
			d.StartDate = tt.start
			d.EndDate = tt.end

			snap := BestDiscount(uuid.New(), dec(1000), now, []models.Discount{d})
			if tt.wantOK {
				assert.NotNil(t, snap)
			} else {
				assert.Nil(t, snap)
			}
		})
	}
}

func TestBestDiscount_InactiveSkipped(t *testing.T) {
	t.Parallel()

	d := activeDiscount("disabled", models.DiscountTypePercent, 10)
	d.Active = false

	snap := BestDiscount(uuid.New(), dec(1000), time.Now().UTC(), []models.Discount{d})
	assert.Nil(t, snap)
}

func TestBestDiscount_ZeroSavingSkipped(t *testing.T) {
	t.Parallel()

	d := activeDiscount("worthless", models.DiscountTypeFixed, 0)

	snap := BestDiscount(uuid.New(), dec(1000), time.Now().UTC(), []models.Discount{d})
	assert.Nil(t, snap)
}

func TestBestDiscount_ProductSpecificRule(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	target := uuid.New()
	other := uuid.New()

	d := activeDiscount("targeted", models.DiscountTypePercent, 20)
	d.Rules = []models.DiscountRule{{
		ID:         uuid.New(),
		DiscountID: d.ID,
		ProductID:  &target,
	}}

	snap := BestDiscount(target, dec(1000), now, []models.Discount{d})
	require.NotNil(t, snap)
	require.NotNil(t, snap.RuleProductID)
	assert.Equal(t, target, *snap.RuleProductID)

	assert.Nil(t, BestDiscount(other, dec(1000), now, []models.Discount{d}))
}

func TestBestDiscount_Idempotent(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	productID := uuid.New()
	d := activeDiscount("stable", models.DiscountTypePercent, 15)
	candidates := []models.Discount{d}

	first := BestDiscount(productID, dec(800), now, candidates)
	second := BestDiscount(productID, dec(800), now, candidates)
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.Equal(t, first.DiscountID, second.DiscountID)
	assert.True(t, first.Saving.Equal(second.Saving))
	assert.True(t, first.FinalPrice.Equal(second.FinalPrice))
}

func TestSnapshot_JSONMapShape(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	ruleID := uuid.New()
	productID := uuid.New()

	snap := Snapshot{
		AppliedAt:       now,
		DiscountID:      uuid.New(),
		DiscountName:    "spring sale",
		DiscountCode:    "SPRING",
		DiscountType:    models.DiscountTypePercent,
		DiscountValue:   dec(10),
		RuleID:          &ruleID,
		RuleMinSubtotal: dec(500),
		RuleProductID:   &productID,
		OriginalPrice:   dec(1000),
		Saving:          dec(100),
		FinalPrice:      dec(900),
	}

	m := snap.JSONMap()

	assert.Equal(t, now.Format(time.RFC3339), m["applied_at"])
	assert.Equal(t, snap.DiscountID.String(), m["discount_id"])
	assert.Equal(t, "spring sale", m["discount_name"])
	assert.Equal(t, "SPRING", m["discount_code"])
	assert.Equal(t, models.DiscountTypePercent, m["discount_type"])
	assert.Equal(t, ruleID.String(), m["rule_id"])
	assert.Equal(t, productID.String(), m["rule_product_specific"])
	assert.InDelta(t, 1000.0, m["original_price"], 0.001)
	assert.InDelta(t, 100.0, m["saving_amount"], 0.001)
	assert.InDelta(t, 900.0, m["final_price"], 0.001)
}

func TestSnapshot_JSONMapNilRule(t *testing.T) {
	t.Parallel()

	snap := Snapshot{
		AppliedAt:     time.Now().UTC(),
		DiscountID:    uuid.New(),
		OriginalPrice: dec(100),
		Saving:        dec(10),
		FinalPrice:    dec(90),
	}

	m := snap.JSONMap()
	assert.Nil(t, m["rule_id"])
	assert.Nil(t, m["rule_product_specific"])
}
