package response

import (
	"time"

	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderItemResponse struct {
	ProductID uuid.UUID   `json:"product_id"`
	NameEN    string      `json:"name_en"`
	NameAR    string      `json:"name_ar"`
	Price     money.Money `json:"price"`
	Quantity  int         `json:"quantity"`
	Image     string      `json:"image"`
}

type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	PublicID      string              `json:"public_order_id"`
	CustomerName  string              `json:"customer_name"`
	Phone         string              `json:"phone"`
	City          string              `json:"city"`
	Address       string              `json:"address"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      money.Money         `json:"subtotal"`
	Discount      money.Money         `json:"discount"`
	Total         money.Money         `json:"total"`
	CouponCode    *string             `json:"coupon_code"`
	PaymentMethod string              `json:"payment_method"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type CreateOrderResponse struct {
	PublicOrderID string         `json:"public_order_id"`
	Order         *OrderResponse `json:"order"`
}

type TrackingResponse struct {
	PublicID      string              `json:"public_order_id"`
	Status        string              `json:"status"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      money.Money         `json:"subtotal"`
	Discount      money.Money         `json:"discount"`
	Total         money.Money         `json:"total"`
	CouponCode    *string             `json:"coupon_code"`
	PaymentMethod string              `json:"payment_method"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	res := &OrderResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "map order response")
	}
	if res.Items == nil {
		res.Items = []OrderItemResponse{}
	}
	return res, nil
}

func FromOrderViews(views []*queries.OrderView) ([]*OrderResponse, error) {
	res := make([]*OrderResponse, len(views))
	for i, v := range views {
		r, err := FromOrderView(v)
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}

func FromPlaceOrderResult(r *commands.PlaceOrderResult) (*CreateOrderResponse, error) {
	o, err := FromOrderView(r.Order)
	if err != nil {
		return nil, err
	}
	return &CreateOrderResponse{PublicOrderID: r.PublicID, Order: o}, nil
}

// FromOrderPage leaves NextCursor empty on the last page.
func FromOrderPage(views []*queries.OrderView, next *queries.Cursor) (*OrderListResponse, error) {
	orders, err := FromOrderViews(views)
	if err != nil {
		return nil, err
	}
	res := &OrderListResponse{Orders: orders}
	if next != nil {
		res.NextCursor = next.After
	}
	return res, nil
}

func FromTrackingView(v *queries.TrackingView) (*TrackingResponse, error) {
	res := &TrackingResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "map tracking response")
	}
	if res.Items == nil {
		res.Items = []OrderItemResponse{}
	}
	return res, nil
}
