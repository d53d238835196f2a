package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// FirstSequence is the first number handed out by the public id sequence.
const FirstSequence int64 = 100001

var ErrInvalidPublicID = errors.New("invalid public order id")

var publicIDRegex = regexp.MustCompile(`^[A-Z0-9]{1,16}-[0-9]{6,}$`)

// PublicID is the customer-facing order number, e.g. ZAY-100001.
type PublicID string

func FormatPublicID(prefix string, seq int64) PublicID {
	return PublicID(fmt.Sprintf("%s-%06d", strings.ToUpper(prefix), seq))
}

// ParsePublicID trims user input and checks the PREFIX-NNNNNN shape. The
// prefix is case-sensitive, matching the stored form.
func ParsePublicID(raw string) (PublicID, error) {
	id := strings.TrimSpace(raw)
	if !publicIDRegex.MatchString(id) {
		return "", ErrInvalidPublicID
	}
	return PublicID(id), nil
}

func (p PublicID) String() string {
	return string(p)
}
