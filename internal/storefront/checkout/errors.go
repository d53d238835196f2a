package checkout

import (
	"strings"

	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/storefront/remote"
)

const MsgPlaceOrderFailed = "Failed to place order"

var ErrEmptyCart = errs.New("cart is empty")

// ValidationError lists customer fields left blank. Nothing was sent.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// UserMessage is the text to show after a failed submission: the order
// service's own message when there is one.
func UserMessage(err error) string {
	var re *remote.RemoteError
	if errs.As(err, &re) && re.Message != "" {
		return re.Message
	}
	var ve *ValidationError
	if errs.As(err, &ve) {
		return "Please fill in all fields"
	}
	if errs.Is(err, ErrEmptyCart) {
		return "Your cart is empty"
	}
	return MsgPlaceOrderFailed
}
