package request

import (
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderItemRequest struct {
	ProductID uuid.UUID   `json:"product_id" binding:"required"`
	NameEN    string      `json:"name_en" binding:"required"`
	NameAR    string      `json:"name_ar"`
	Price     money.Money `json:"price"`
	Quantity  int         `json:"quantity" binding:"required,min=1"`
	Image     string      `json:"image"`
}

// CreateOrderRequest leaves customer fields unchecked by the binder so the
// use case can name every missing field in one message.
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Phone        string             `json:"phone"`
	City         string             `json:"city"`
	Address      string             `json:"address"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal     money.Money        `json:"subtotal"`
	Discount     money.Money        `json:"discount"`
	Total        money.Money        `json:"total"`
	CouponCode   *string            `json:"coupon_code"`
}

func (r *CreateOrderRequest) ToCommand() (commands.PlaceOrderCommand, error) {
	var cmd commands.PlaceOrderCommand
	if err := copier.Copy(&cmd, r); err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	return cmd, nil
}

type TrackOrderRequest struct {
	OrderID string `json:"order_id"`
	Phone   string `json:"phone"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
