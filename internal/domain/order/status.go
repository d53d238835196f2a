package order

import (
	"errors"
	"strings"
)

var ErrInvalidStatus = errors.New("invalid order status")

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

var allStatuses = []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

func AllStatuses() []Status {
	return append([]Status(nil), allStatuses...)
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the lifecycle has ended.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ParseStatus accepts any letter case and returns the canonical value.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	for _, v := range allStatuses {
		if strings.EqualFold(raw, string(v)) {
			return v, nil
		}
	}
	return "", ErrInvalidStatus
}
