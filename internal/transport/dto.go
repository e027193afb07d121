package transport

import (
	"github.com/google/uuid"

	"github.com/woodharbor/slabstore/internal/domain"
	"github.com/woodharbor/slabstore/internal/models"
)

// ProductView is a product decorated with its derived display state. Every
// product-returning endpoint goes through this shape so listings, detail and
// recommendations can never disagree about buyability.
type ProductView struct {
	models.Product
	EffectiveStatus domain.DisplayStatus `json:"effective_status"`
	StockTotal      int                  `json:"stock_total"`
}

func NewProductView(p models.Product) ProductView {
	return ProductView{
		Product:         p,
		EffectiveStatus: domain.EffectiveStatus(&p),
		StockTotal:      domain.TotalStock(p.Stock),
	}
}

func NewProductViews(items []models.Product) []ProductView {
	views := make([]ProductView, len(items))
	for i := range items {
		views[i] = NewProductView(items[i])
	}
	return views
}

// DepositResult is the caller-facing outcome of the QR deposit flow. The
// storefront shows Message inline on failure and renders QRImage on success.
type DepositResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	QRImage  string `json:"qrImage,omitempty"`
	ChargeID string `json:"chargeId,omitempty"`
}

type DiscountPreview struct {
	DiscountID    uuid.UUID `json:"discount_id"`
	DiscountName  string    `json:"discount_name"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue float64   `json:"discount_value"`
	Saving        float64   `json:"saving"`
	FinalPrice    float64   `json:"final_price"`
}

func NewDiscountPreview(s *domain.Snapshot) *DiscountPreview {
	if s == nil {
		return nil
	}
	return &DiscountPreview{
		DiscountID:    s.DiscountID,
		DiscountName:  s.DiscountName,
		DiscountType:  s.DiscountType,
		DiscountValue: s.DiscountValue.InexactFloat64(),
		Saving:        s.Saving.InexactFloat64(),
		FinalPrice:    s.FinalPrice.InexactFloat64(),
	}
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type FavoriteStatusResponse struct {
	Count    int  `json:"count"`
	Liked    bool `json:"liked"`
	LoggedIn bool `json:"logged_in"`
}
