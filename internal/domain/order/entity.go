package order

import (
	"errors"
	"strings"
	"time"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/money"

	"github.com/google/uuid"
)

const PaymentCashOnDelivery = "Cash on Delivery"

var (
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("item quantity must be at least 1")
	ErrInvalidItemPrice = errors.New("item price cannot be negative")
	ErrDuplicateItem    = errors.New("product appears more than once")
	ErrSubtotalMismatch = errors.New("subtotal does not match items")
	ErrInvalidDiscount  = errors.New("discount must be between 0 and subtotal")
	ErrTotalMismatch    = errors.New("total does not equal subtotal minus discount")
)

// MissingFieldsError lists required customer fields that were blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

type Customer struct {
	Name    string
	Phone   string
	City    string
	Address string
}

func NewCustomer(name, phone, city, address string) (Customer, error) {
	c := Customer{
		Name:    strings.TrimSpace(name),
		Phone:   strings.TrimSpace(phone),
		City:    strings.TrimSpace(city),
		Address: strings.TrimSpace(address),
	}
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"customer_name", c.Name},
		{"phone", c.Phone},
		{"city", c.City},
		{"address", c.Address},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return Customer{}, &MissingFieldsError{Fields: missing}
	}
	return c, nil
}

// Item is the immutable snapshot of a purchased product.
type Item struct {
	ProductID uuid.UUID
	Name      catalog.LocalizedText
	UnitPrice money.Money
	Quantity  int
	Image     string
}

func (i Item) LineTotal() money.Money {
	return i.UnitPrice.Mul(i.Quantity)
}

type Totals struct {
	Subtotal money.Money
	Discount money.Money
	Total    money.Money
}

type Order struct {
	id            uuid.UUID
	publicID      PublicID
	customer      Customer
	items         []Item
	totals        Totals
	couponCode    *coupon.Code
	paymentMethod string
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
}

type PlaceParams struct {
	Customer   Customer
	Items      []Item
	Totals     Totals
	CouponCode *coupon.Code
}

// Place creates a Pending order after checking the submitted arithmetic.
func Place(publicID PublicID, p PlaceParams, now time.Time) (*Order, error) {
	if len(p.Items) == 0 {
		return nil, ErrNoItems
	}
	seen := make(map[uuid.UUID]struct{}, len(p.Items))
	computed := money.Zero
	for _, it := range p.Items {
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if it.UnitPrice.IsNegative() {
			return nil, ErrInvalidItemPrice
		}
		if _, dup := seen[it.ProductID]; dup {
			return nil, ErrDuplicateItem
		}
		seen[it.ProductID] = struct{}{}
		computed = computed.Add(it.LineTotal())
	}
	if err := CheckTotals(computed, p.Totals); err != nil {
		return nil, err
	}

	return &Order{
		id:            uuid.New(),
		publicID:      publicID,
		customer:      p.Customer,
		items:         append([]Item(nil), p.Items...),
		totals:        p.Totals,
		couponCode:    p.CouponCode,
		paymentMethod: PaymentCashOnDelivery,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// CheckTotals verifies subtotal, discount and total against the item sum.
// Amounts are compared at two decimal places.
func CheckTotals(itemSum money.Money, t Totals) error {
	if !itemSum.Round().Equal(t.Subtotal.Round()) {
		return ErrSubtotalMismatch
	}
	if t.Discount.IsNegative() || t.Discount.GreaterThan(t.Subtotal) {
		return ErrInvalidDiscount
	}
	if !t.Subtotal.SubFloor(t.Discount).Round().Equal(t.Total.Round()) {
		return ErrTotalMismatch
	}
	return nil
}

type Snapshot struct {
	ID            uuid.UUID
	PublicID      PublicID
	Customer      Customer
	Items         []Item
	Totals        Totals
	CouponCode    *coupon.Code
	PaymentMethod string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func Reconstruct(s Snapshot) *Order {
	return &Order{
		id:            s.ID,
		publicID:      s.PublicID,
		customer:      s.Customer,
		items:         append([]Item(nil), s.Items...),
		totals:        s.Totals,
		couponCode:    s.CouponCode,
		paymentMethod: s.PaymentMethod,
		status:        s.Status,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
	}
}

// ChangeStatus moves the order under the given policy.
func (o *Order) ChangeStatus(to Status, policy TransitionPolicy, now time.Time) error {
	if err := policy.Check(o.status, to); err != nil {
		return err
	}
	if o.status == to {
		return nil
	}
	o.status = to
	o.updatedAt = now
	return nil
}

// TrackingMatches is the lookup key check: both the public id and the phone
// must equal the stored values after trimming surrounding whitespace.
func TrackingMatches(storedID PublicID, storedPhone, publicID, phone string) bool {
	return string(storedID) == strings.TrimSpace(publicID) &&
		storedPhone == strings.TrimSpace(phone)
}

func (o *Order) MatchesTracking(publicID, phone string) bool {
	return TrackingMatches(o.publicID, o.customer.Phone, publicID, phone)
}

func (o *Order) ID() uuid.UUID            { return o.id }
func (o *Order) PublicID() PublicID       { return o.publicID }
func (o *Order) Customer() Customer       { return o.customer }
func (o *Order) Items() []Item            { return append([]Item(nil), o.items...) }
func (o *Order) Totals() Totals           { return o.totals }
func (o *Order) CouponCode() *coupon.Code { return o.couponCode }
func (o *Order) PaymentMethod() string    { return o.paymentMethod }
func (o *Order) Status() Status           { return o.status }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) UpdatedAt() time.Time     { return o.updatedAt }
