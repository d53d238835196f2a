package queries

import (
	"time"

	"zaylux-store/internal/domain/money"

	"github.com/google/uuid"
)

// OrderItemView is one purchased line as it was snapshotted at checkout.
type OrderItemView struct {
	ProductID uuid.UUID   `json:"product_id"`
	NameEN    string      `json:"name_en"`
	NameAR    string      `json:"name_ar"`
	Price     money.Money `json:"price"`
	Quantity  int         `json:"quantity"`
	Image     string      `json:"image"`
}

// OrderView is the full order as seen by the admin console.
type OrderView struct {
	ID            uuid.UUID       `json:"id"`
	PublicID      string          `json:"public_order_id"`
	CustomerName  string          `json:"customer_name"`
	Phone         string          `json:"phone"`
	City          string          `json:"city"`
	Address       string          `json:"address"`
	Items         []OrderItemView `json:"items"`
	Subtotal      money.Money     `json:"subtotal"`
	Discount      money.Money     `json:"discount"`
	Total         money.Money     `json:"total"`
	CouponCode    *string         `json:"coupon_code,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TrackingView is what a customer sees after a successful tracking lookup.
// Contact and address fields are left out.
type TrackingView struct {
	PublicID      string          `json:"public_order_id"`
	Status        string          `json:"status"`
	Items         []OrderItemView `json:"items"`
	Subtotal      money.Money     `json:"subtotal"`
	Discount      money.Money     `json:"discount"`
	Total         money.Money     `json:"total"`
	CouponCode    *string         `json:"coupon_code,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ProductView struct {
	ID            uuid.UUID    `json:"id"`
	NameEN        string       `json:"name_en"`
	NameAR        string       `json:"name_ar"`
	DescriptionEN string       `json:"description_en"`
	DescriptionAR string       `json:"description_ar"`
	Category      string       `json:"category"`
	Price         money.Money  `json:"price"`
	OriginalPrice *money.Money `json:"original_price,omitempty"`
	Quantity      int          `json:"quantity"`
	Images        []string     `json:"images"`
	IsVisible     bool         `json:"is_visible"`
	CreatedAt     time.Time    `json:"created_at"`
}

type CouponView struct {
	ID                 uuid.UUID    `json:"id"`
	Code               string       `json:"code"`
	DiscountPercentage float64      `json:"discount_percentage"`
	MinOrderValue      *money.Money `json:"min_order_value,omitempty"`
	ExpiryDate         *time.Time   `json:"expiry_date,omitempty"`
	IsActive           bool         `json:"is_active"`
	UsageCount         int          `json:"usage_count"`
	CreatedAt          time.Time    `json:"created_at"`
}

// CustomerSummaryView aggregates all orders placed from one phone number.
// Name, city and address come from the most recent order.
type CustomerSummaryView struct {
	Phone           string      `json:"phone"`
	Name            string      `json:"name"`
	City            string      `json:"city"`
	Address         string      `json:"address"`
	TotalOrders     int         `json:"total_orders"`
	CancelledOrders int         `json:"cancelled_orders"`
	TotalSpent      money.Money `json:"total_spent"`
	LastOrder       time.Time   `json:"last_order"`
	IsBlocked       bool        `json:"is_blocked"`
}

type DashboardStatsView struct {
	TotalProducts  int         `json:"total_products"`
	TotalOrders    int         `json:"total_orders"`
	PendingOrders  int         `json:"pending_orders"`
	TotalCustomers int         `json:"total_customers"`
	TotalRevenue   money.Money `json:"total_revenue"`
}

type OrderListFilter struct {
	Status *string
	Phone  *string
}

type ProductFilter struct {
	Category    *string
	VisibleOnly bool
}

// NotifyRequestView is one back-in-stock request.
type NotifyRequestView struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Phone     string    `json:"phone"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductDemandView groups the requests waiting on one product.
type ProductDemandView struct {
	ProductID     uuid.UUID           `json:"product_id"`
	ProductNameEN string              `json:"product_name_en"`
	ProductNameAR string              `json:"product_name_ar"`
	Count         int                 `json:"count"`
	Requests      []NotifyRequestView `json:"requests"`
}
