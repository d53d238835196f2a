//go:build unit

package order_test

import (
	"testing"

	"zaylux-store/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPublicID(t *testing.T) {
	assert.Equal(t, order.PublicID("ZAY-100001"), order.FormatPublicID("ZAY", order.FirstSequence))
	assert.Equal(t, order.PublicID("ZAY-000042"), order.FormatPublicID("zay", 42))
	assert.Equal(t, order.PublicID("ZAY-1234567"), order.FormatPublicID("ZAY", 1234567))
}

func TestParsePublicID(t *testing.T) {
	id, err := order.ParsePublicID(" ZAY-100001 ")
	require.NoError(t, err)
	assert.Equal(t, "ZAY-100001", id.String())
	_, err = order.ParsePublicID("ZL1-000042")
	require.NoError(t, err)

	for _, raw := range []string{"", "ZAY100001", "ZAY-12", "zay-100001", "ZAY-10000a", "ZAY-100001-2"} {
		_, err := order.ParsePublicID(raw)
		assert.ErrorIs(t, err, order.ErrInvalidPublicID, raw)
	}
}
