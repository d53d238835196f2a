package customer

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyPhone = errors.New("phone is required")

// Blocked is an entry on the block list. Orders from a blocked phone are refused.
type Blocked struct {
	Phone     string
	Reason    string
	BlockedAt time.Time
}

func NewBlocked(phone, reason string, now time.Time) (Blocked, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Blocked{}, ErrEmptyPhone
	}
	return Blocked{Phone: phone, Reason: strings.TrimSpace(reason), BlockedAt: now}, nil
}
