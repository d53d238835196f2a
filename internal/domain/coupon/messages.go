package coupon

import "errors"

const (
	MsgEmptyCode = "Please enter a coupon code"
	MsgNotFound  = "Invalid coupon code"
	MsgInactive  = "This coupon is no longer active"
	MsgExpired   = "This coupon has expired"
	MsgApplied   = "Coupon applied successfully"
)

// RejectionMessage renders the customer-facing reason for an Evaluate error.
func RejectionMessage(err error) string {
	var minErr *MinimumOrderError
	switch {
	case errors.As(err, &minErr):
		return "Minimum order value is " + minErr.Threshold.Format()
	case errors.Is(err, ErrCouponInactive):
		return MsgInactive
	case errors.Is(err, ErrCouponExpired):
		return MsgExpired
	default:
		return MsgNotFound
	}
}
