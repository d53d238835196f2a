package notify

import (
	"errors"
	"strings"
	"time"

	"zaylux-store/internal/pkg/ptr"

	"github.com/google/uuid"
)

var (
	ErrEmptyPhone     = errors.New("phone is required")
	ErrProductInStock = errors.New("product is in stock")
)

// Request asks to be told when an out-of-stock product is available again.
// A phone can hold one request per product.
type Request struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Phone     string
	Name      *string
	CreatedAt time.Time
}

// NewRequest accepts only products with no stock left.
func NewRequest(productID uuid.UUID, stock int, phone string, name *string, now time.Time) (Request, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Request{}, ErrEmptyPhone
	}
	if stock > 0 {
		return Request{}, ErrProductInStock
	}
	return Request{
		ID:        uuid.New(),
		ProductID: productID,
		Phone:     phone,
		Name:      ptr.NilIfZero(strings.TrimSpace(ptr.Deref(name))),
		CreatedAt: now,
	}, nil
}
