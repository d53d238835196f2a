package catalog

import (
	"errors"
	"strings"
	"time"

	"zaylux-store/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory   = errors.New("invalid product category")
	ErrEmptyName         = errors.New("product name is required in both languages")
	ErrInvalidPrice      = errors.New("product price must be positive")
	ErrInvalidStock      = errors.New("stock cannot be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Category string

const (
	CategoryPerfume Category = "perfume"
	CategoryDrone   Category = "drone"
	CategoryWatch   Category = "watch"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryPerfume, CategoryDrone, CategoryWatch:
		return true
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// LocalizedText carries the two storefront languages.
type LocalizedText struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

func (t LocalizedText) In(lang string) string {
	if lang == "ar" && t.AR != "" {
		return t.AR
	}
	return t.EN
}

type Product struct {
	id            uuid.UUID
	name          LocalizedText
	description   LocalizedText
	category      Category
	price         money.Money
	originalPrice *money.Money
	stock         int
	images        []string
	visible       bool
	createdAt     time.Time
}

type NewProductParams struct {
	Name          LocalizedText
	Description   LocalizedText
	Category      Category
	Price         money.Money
	OriginalPrice *money.Money
	Stock         int
	Images        []string
	Visible       bool
}

func (p NewProductParams) validate() error {
	if strings.TrimSpace(p.Name.EN) == "" || strings.TrimSpace(p.Name.AR) == "" {
		return ErrEmptyName
	}
	if !p.Category.IsValid() {
		return ErrInvalidCategory
	}
	if !p.Price.GreaterThan(money.Zero) {
		return ErrInvalidPrice
	}
	if p.OriginalPrice != nil && p.OriginalPrice.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

func NewProduct(p NewProductParams, now time.Time) (*Product, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Product{
		id:            uuid.New(),
		name:          p.Name,
		description:   p.Description,
		category:      p.Category,
		price:         p.Price,
		originalPrice: p.OriginalPrice,
		stock:         p.Stock,
		images:        append([]string(nil), p.Images...),
		visible:       p.Visible,
		createdAt:     now,
	}, nil
}

func ReconstructProduct(id uuid.UUID, p NewProductParams, createdAt time.Time) *Product {
	return &Product{
		id:            id,
		name:          p.Name,
		description:   p.Description,
		category:      p.Category,
		price:         p.Price,
		originalPrice: p.OriginalPrice,
		stock:         p.Stock,
		images:        append([]string(nil), p.Images...),
		visible:       p.Visible,
		createdAt:     createdAt,
	}
}

// Params returns the editable fields, the starting point for a partial update.
func (p *Product) Params() NewProductParams {
	return NewProductParams{
		Name:          p.name,
		Description:   p.description,
		Category:      p.category,
		Price:         p.price,
		OriginalPrice: p.originalPrice,
		Stock:         p.stock,
		Images:        append([]string(nil), p.images...),
		Visible:       p.visible,
	}
}

// Update replaces every editable field after validation.
func (p *Product) Update(params NewProductParams) error {
	if err := params.validate(); err != nil {
		return err
	}
	p.name = params.Name
	p.description = params.Description
	p.category = params.Category
	p.price = params.Price
	p.originalPrice = params.OriginalPrice
	p.stock = params.Stock
	p.images = append([]string(nil), params.Images...)
	p.visible = params.Visible
	return nil
}

func (p *Product) ID() uuid.UUID               { return p.id }
func (p *Product) Name() LocalizedText         { return p.name }
func (p *Product) Description() LocalizedText  { return p.description }
func (p *Product) Category() Category          { return p.category }
func (p *Product) Price() money.Money          { return p.price }
func (p *Product) OriginalPrice() *money.Money { return p.originalPrice }
func (p *Product) Stock() int                  { return p.stock }
func (p *Product) Images() []string            { return append([]string(nil), p.images...) }
func (p *Product) Visible() bool               { return p.visible }
func (p *Product) CreatedAt() time.Time        { return p.createdAt }

// PrimaryImage is the image snapshotted into carts and orders.
func (p *Product) PrimaryImage() string {
	if len(p.images) == 0 {
		return ""
	}
	return p.images[0]
}

func (p *Product) CanFulfil(quantity int) bool {
	return quantity > 0 && p.stock >= quantity
}

// Reserve decrements stock for a placed order.
func (p *Product) Reserve(quantity int) error {
	if !p.CanFulfil(quantity) {
		return ErrInsufficientStock
	}
	p.stock -= quantity
	return nil
}
