package remote

import (
	"time"

	domcart "zaylux-store/internal/domain/cart"
	"zaylux-store/internal/domain/money"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string       `json:"id"`
	NameEN        string       `json:"name_en"`
	NameAR        string       `json:"name_ar"`
	DescriptionEN string       `json:"description_en"`
	DescriptionAR string       `json:"description_ar"`
	Category      string       `json:"category"`
	Price         money.Money  `json:"price"`
	OriginalPrice *money.Money `json:"original_price"`
	Quantity      int          `json:"quantity"`
	Images        []string     `json:"images"`
	IsVisible     bool         `json:"is_visible"`
}

// CartSnapshot captures the display fields a cart line keeps.
func (p Product) CartSnapshot() domcart.Snapshot {
	snap := domcart.Snapshot{NameEN: p.NameEN, NameAR: p.NameAR, Price: p.Price}
	if len(p.Images) > 0 {
		snap.Image = p.Images[0]
	}
	return snap
}

func (p Product) InStock() bool {
	return p.Quantity > 0
}

type CouponResult struct {
	Valid              bool            `json:"valid"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     money.Money     `json:"discount_amount"`
	Message            string          `json:"message"`
}

type OrderItem struct {
	ProductID string      `json:"product_id"`
	NameEN    string      `json:"name_en"`
	NameAR    string      `json:"name_ar"`
	Price     money.Money `json:"price"`
	Quantity  int         `json:"quantity"`
	Image     string      `json:"image"`
}

type OrderRequest struct {
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	City         string      `json:"city"`
	Address      string      `json:"address"`
	Items        []OrderItem `json:"items"`
	Subtotal     money.Money `json:"subtotal"`
	Discount     money.Money `json:"discount"`
	Total        money.Money `json:"total"`
	CouponCode   *string     `json:"coupon_code,omitempty"`
}

type Order struct {
	ID            string      `json:"id"`
	PublicID      string      `json:"public_order_id"`
	CustomerName  string      `json:"customer_name"`
	Phone         string      `json:"phone"`
	City          string      `json:"city"`
	Address       string      `json:"address"`
	Items         []OrderItem `json:"items"`
	Subtotal      money.Money `json:"subtotal"`
	Discount      money.Money `json:"discount"`
	Total         money.Money `json:"total"`
	CouponCode    *string     `json:"coupon_code"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

type Placement struct {
	PublicOrderID string `json:"public_order_id"`
	Order         Order  `json:"order"`
	// Replayed is set when the authority answered from a stored result.
	Replayed bool `json:"-"`
}

type TrackedOrder struct {
	PublicID      string      `json:"public_order_id"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"items"`
	Subtotal      money.Money `json:"subtotal"`
	Discount      money.Money `json:"discount"`
	Total         money.Money `json:"total"`
	CouponCode    *string     `json:"coupon_code"`
	PaymentMethod string      `json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type RestockRequest struct {
	ID        string    `json:"id,omitempty"`
	ProductID string    `json:"product_id"`
	Phone     string    `json:"phone"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
