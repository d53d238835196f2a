// Package tracking looks up a placed order by public id and phone.
package tracking

import (
	"context"
	"strings"

	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/storefront/remote"
)

var (
	ErrMissingInput  = errs.New("order id and phone are required")
	ErrOrderNotFound = errs.New("order not found")
)

type Client interface {
	TrackOrder(ctx context.Context, orderID, phone string) (*remote.TrackedOrder, error)
}

type Tracker struct {
	client Client
}

func NewTracker(client Client) *Tracker {
	return &Tracker{client: client}
}

// Track returns ErrOrderNotFound when no order matches both values.
func (t *Tracker) Track(ctx context.Context, orderID, phone string) (*remote.TrackedOrder, error) {
	orderID = strings.TrimSpace(orderID)
	phone = strings.TrimSpace(phone)
	if orderID == "" || phone == "" {
		return nil, ErrMissingInput
	}

	order, err := t.client.TrackOrder(ctx, orderID, phone)
	if err != nil {
		var re *remote.RemoteError
		if errs.As(err, &re) && re.IsNotFound() {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Wrap(err, "track order")
	}
	return order, nil
}
