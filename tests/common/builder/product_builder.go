//go:build unit || e2e

package builder

import (
	"time"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/money"
	reqdto "zaylux-store/internal/handler/dto/request"
	"zaylux-store/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductBuilder struct {
	ID            uuid.UUID
	NameEN        string
	NameAR        string
	DescriptionEN string
	DescriptionAR string
	Category      catalog.Category
	Price         money.Money
	OriginalPrice *money.Money
	Stock         int
	Images        []string
	Visible       bool
	CreatedAt     time.Time
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:            uuid.New(),
		NameEN:        "Oud Royal",
		NameAR:        "عود ملكي",
		DescriptionEN: "Rich oud with amber",
		DescriptionAR: "عود غني بالعنبر",
		Category:      catalog.CategoryPerfume,
		Price:         money.MustParse("350.00"),
		Stock:         10,
		Images:        []string{"https://cdn.example.com/oud.jpg"},
		Visible:       true,
		CreatedAt:     time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

func (b *ProductBuilder) WithPrice(price string) *ProductBuilder {
	b.Price = money.MustParse(price)
	return b
}

func (b *ProductBuilder) WithStock(stock int) *ProductBuilder {
	b.Stock = stock
	return b
}

func (b *ProductBuilder) WithCategory(c catalog.Category) *ProductBuilder {
	b.Category = c
	return b
}

func (b *ProductBuilder) Hidden() *ProductBuilder {
	b.Visible = false
	return b
}

func (b *ProductBuilder) BuildParams() catalog.NewProductParams {
	return catalog.NewProductParams{
		Name:          catalog.LocalizedText{EN: b.NameEN, AR: b.NameAR},
		Description:   catalog.LocalizedText{EN: b.DescriptionEN, AR: b.DescriptionAR},
		Category:      b.Category,
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		Stock:         b.Stock,
		Images:        b.Images,
		Visible:       b.Visible,
	}
}

func (b *ProductBuilder) BuildDomain() (*catalog.Product, error) {
	return catalog.NewProduct(b.BuildParams(), b.CreatedAt)
}

// BuildStored returns the product as a repository would load it, keeping ID.
func (b *ProductBuilder) BuildStored() *catalog.Product {
	return catalog.ReconstructProduct(b.ID, b.BuildParams(), b.CreatedAt)
}

func (b *ProductBuilder) BuildView() *queries.ProductView {
	return &queries.ProductView{
		ID:            b.ID,
		NameEN:        b.NameEN,
		NameAR:        b.NameAR,
		DescriptionEN: b.DescriptionEN,
		DescriptionAR: b.DescriptionAR,
		Category:      b.Category.String(),
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		Quantity:      b.Stock,
		Images:        append([]string(nil), b.Images...),
		IsVisible:     b.Visible,
		CreatedAt:     b.CreatedAt,
	}
}

func (b *ProductBuilder) BuildCreateRequestDTO() reqdto.CreateProductRequest {
	visible := b.Visible
	return reqdto.CreateProductRequest{
		NameEN:        b.NameEN,
		NameAR:        b.NameAR,
		DescriptionEN: b.DescriptionEN,
		DescriptionAR: b.DescriptionAR,
		Category:      b.Category.String(),
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		Quantity:      b.Stock,
		Images:        b.Images,
		IsVisible:     &visible,
	}
}
