package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"zaylux-store/internal/domain/money"
)

var ErrCorrupted = errors.New("stored cart is corrupted")

// persistedLine is the stored shape of one cart line.
type persistedLine struct {
	ProductID string      `json:"productId"`
	Quantity  int         `json:"quantity"`
	NameEN    string      `json:"name_en"`
	NameAR    string      `json:"name_ar"`
	Price     money.Money `json:"price"`
	Image     string      `json:"image"`
}

// Encode writes the whole cart as a JSON array, preserving order.
func Encode(c *Cart) ([]byte, error) {
	lines := make([]persistedLine, 0, len(c.items))
	for _, it := range c.items {
		lines = append(lines, persistedLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			NameEN:    it.NameEN,
			NameAR:    it.NameAR,
			Price:     it.Price,
			Image:     it.Image,
		})
	}
	return json.Marshal(lines)
}

// Decode parses a stored cart. Values that cannot be parsed or that break
// the cart invariants are reported as ErrCorrupted.
func Decode(data []byte) (*Cart, error) {
	var lines []persistedLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	c := New()
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if l.ProductID == "" || l.Quantity < 1 || l.Price.IsNegative() {
			return nil, fmt.Errorf("%w: line %d is invalid", ErrCorrupted, i)
		}
		if _, dup := seen[l.ProductID]; dup {
			return nil, fmt.Errorf("%w: duplicate product %s", ErrCorrupted, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
		c.items = append(c.items, LineItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Snapshot: Snapshot{
				NameEN: l.NameEN,
				NameAR: l.NameAR,
				Price:  l.Price,
				Image:  l.Image,
			},
		})
	}
	return c, nil
}
