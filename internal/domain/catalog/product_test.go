//go:build unit

package catalog_test

import (
	"testing"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/money"
	"zaylux-store/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*builder.ProductBuilder)
		wantErr error
	}{
		{name: "valid", mutate: func(*builder.ProductBuilder) {}},
		{name: "zero stock is allowed", mutate: func(b *builder.ProductBuilder) { b.Stock = 0 }},
		{name: "missing arabic name", mutate: func(b *builder.ProductBuilder) { b.NameAR = " " }, wantErr: catalog.ErrEmptyName},
		{name: "unknown category", mutate: func(b *builder.ProductBuilder) { b.Category = "bag" }, wantErr: catalog.ErrInvalidCategory},
		{name: "zero price", mutate: func(b *builder.ProductBuilder) { b.Price = money.Zero }, wantErr: catalog.ErrInvalidPrice},
		{name: "negative stock", mutate: func(b *builder.ProductBuilder) { b.Stock = -1 }, wantErr: catalog.ErrInvalidStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := builder.NewProductBuilder().With(tt.mutate).BuildDomain()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReserve(t *testing.T) {
	p := builder.NewProductBuilder().WithStock(3).BuildStored()

	require.NoError(t, p.Reserve(2))
	assert.Equal(t, 1, p.Stock())

	assert.ErrorIs(t, p.Reserve(2), catalog.ErrInsufficientStock)
	assert.Equal(t, 1, p.Stock())

	assert.ErrorIs(t, p.Reserve(0), catalog.ErrInsufficientStock)
}

func TestParseCategory(t *testing.T) {
	c, err := catalog.ParseCategory(" Drone ")
	require.NoError(t, err)
	assert.Equal(t, catalog.CategoryDrone, c)

	_, err = catalog.ParseCategory("bags")
	assert.ErrorIs(t, err, catalog.ErrInvalidCategory)
}

func TestLocalizedText(t *testing.T) {
	txt := catalog.LocalizedText{EN: "Watch", AR: "ساعة"}
	assert.Equal(t, "ساعة", txt.In("ar"))
	assert.Equal(t, "Watch", txt.In("en"))
	assert.Equal(t, "Watch", catalog.LocalizedText{EN: "Watch"}.In("ar"))
}
