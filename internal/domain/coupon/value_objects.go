package coupon

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidMinOrderValue   = errors.New("minimum order value cannot be negative")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

var maxPercent = decimal.NewFromInt(100)

type Code string

// NormalizeCode is the lookup form of any user input: trimmed and upper-cased.
func NormalizeCode(raw string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(raw)))
}

// NewCouponCode validates a code for a coupon being created.
func NewCouponCode(raw string) (Code, error) {
	code := NormalizeCode(raw)
	if !couponCodeRegex.MatchString(string(code)) {
		return "", ErrInvalidCouponCode
	}
	return code, nil
}

func (c Code) String() string {
	return string(c)
}

func (c Code) IsEmpty() bool {
	return c == ""
}

type Percentage struct {
	value decimal.Decimal
}

func NewPercentage(v decimal.Decimal) (Percentage, error) {
	if v.IsNegative() || v.GreaterThan(maxPercent) {
		return Percentage{}, ErrInvalidDiscountPercent
	}
	return Percentage{value: v}, nil
}

func MustPercentage(v int64) Percentage {
	p, err := NewPercentage(decimal.NewFromInt(v))
	if err != nil {
		panic(err)
	}
	return p
}

func (p Percentage) Decimal() decimal.Decimal { return p.value }

func (p Percentage) String() string { return p.value.String() }
