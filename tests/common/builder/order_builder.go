//go:build unit || e2e

package builder

import (
	"time"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/domain/order"
	reqdto "zaylux-store/internal/handler/dto/request"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID           uuid.UUID
	PublicID     string
	CustomerName string
	Phone        string
	City         string
	Address      string
	Items        []commands.PlaceOrderItem
	Discount     money.Money
	CouponCode   *string
	Status       order.Status
	CreatedAt    time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:           uuid.New(),
		PublicID:     "ZAY-100001",
		CustomerName: "Sara Al-Harbi",
		Phone:        "0551234567",
		City:         "Riyadh",
		Address:      "King Fahd Road, Building 12",
		Items: []commands.PlaceOrderItem{{
			ProductID: uuid.New(),
			NameEN:    "Oud Royal",
			NameAR:    "عود ملكي",
			Price:     money.MustParse("100.00"),
			Quantity:  2,
			Image:     "https://cdn.example.com/oud.jpg",
		}},
		Discount:  money.Zero,
		Status:    order.StatusPending,
		CreatedAt: time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

// WithItem appends a line.
func (b *OrderBuilder) WithItem(productID uuid.UUID, nameEN, price string, qty int) *OrderBuilder {
	b.Items = append(b.Items, commands.PlaceOrderItem{
		ProductID: productID,
		NameEN:    nameEN,
		NameAR:    nameEN,
		Price:     money.MustParse(price),
		Quantity:  qty,
	})
	return b
}

func (b *OrderBuilder) WithoutItems() *OrderBuilder {
	b.Items = nil
	return b
}

func (b *OrderBuilder) WithCoupon(code, discount string) *OrderBuilder {
	b.CouponCode = &code
	b.Discount = money.MustParse(discount)
	return b
}

func (b *OrderBuilder) Subtotal() money.Money {
	total := money.Zero
	for _, it := range b.Items {
		total = total.Add(it.Price.Mul(it.Quantity))
	}
	return total
}

func (b *OrderBuilder) Total() money.Money {
	return b.Subtotal().SubFloor(b.Discount)
}

func (b *OrderBuilder) BuildCommand() commands.PlaceOrderCommand {
	return commands.PlaceOrderCommand{
		CustomerName: b.CustomerName,
		Phone:        b.Phone,
		City:         b.City,
		Address:      b.Address,
		Items:        append([]commands.PlaceOrderItem(nil), b.Items...),
		Subtotal:     b.Subtotal(),
		Discount:     b.Discount,
		Total:        b.Total(),
		CouponCode:   b.CouponCode,
	}
}

func (b *OrderBuilder) BuildRequestDTO() reqdto.CreateOrderRequest {
	req := reqdto.CreateOrderRequest{
		CustomerName: b.CustomerName,
		Phone:        b.Phone,
		City:         b.City,
		Address:      b.Address,
		Subtotal:     b.Subtotal(),
		Discount:     b.Discount,
		Total:        b.Total(),
		CouponCode:   b.CouponCode,
	}
	for _, it := range b.Items {
		req.Items = append(req.Items, reqdto.OrderItemRequest{
			ProductID: it.ProductID,
			NameEN:    it.NameEN,
			NameAR:    it.NameAR,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	return req
}

func (b *OrderBuilder) domainItems() []order.Item {
	items := make([]order.Item, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, order.Item{
			ProductID: it.ProductID,
			Name:      catalog.LocalizedText{EN: it.NameEN, AR: it.NameAR},
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	return items
}

// BuildStored returns the order as loaded from storage in b.Status.
func (b *OrderBuilder) BuildStored() *order.Order {
	var code *coupon.Code
	if b.CouponCode != nil {
		c := coupon.NormalizeCode(*b.CouponCode)
		code = &c
	}
	return order.Reconstruct(order.Snapshot{
		ID:       b.ID,
		PublicID: order.PublicID(b.PublicID),
		Customer: order.Customer{Name: b.CustomerName, Phone: b.Phone, City: b.City, Address: b.Address},
		Items:    b.domainItems(),
		Totals: order.Totals{
			Subtotal: b.Subtotal(),
			Discount: b.Discount,
			Total:    b.Total(),
		},
		CouponCode:    code,
		PaymentMethod: order.PaymentCashOnDelivery,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.CreatedAt,
	})
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	view := &queries.OrderView{
		ID:            b.ID,
		PublicID:      b.PublicID,
		CustomerName:  b.CustomerName,
		Phone:         b.Phone,
		City:          b.City,
		Address:       b.Address,
		Subtotal:      b.Subtotal(),
		Discount:      b.Discount,
		Total:         b.Total(),
		CouponCode:    b.CouponCode,
		PaymentMethod: order.PaymentCashOnDelivery,
		Status:        b.Status.String(),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.CreatedAt,
	}
	for _, it := range b.Items {
		view.Items = append(view.Items, queries.OrderItemView{
			ProductID: it.ProductID,
			NameEN:    it.NameEN,
			NameAR:    it.NameAR,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	return view
}
