package request

import (
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/pkg/patch"
	"zaylux-store/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type CreateProductRequest struct {
	NameEN        string       `json:"name_en" binding:"required"`
	NameAR        string       `json:"name_ar" binding:"required"`
	DescriptionEN string       `json:"description_en"`
	DescriptionAR string       `json:"description_ar"`
	Category      string       `json:"category" binding:"required"`
	Price         money.Money  `json:"price"`
	OriginalPrice *money.Money `json:"original_price"`
	Quantity      int          `json:"quantity" binding:"min=0"`
	Images        []string     `json:"images"`
	IsVisible     *bool        `json:"is_visible"`
}

func (r *CreateProductRequest) ToInput() (commands.ProductInput, error) {
	var in commands.ProductInput
	if err := copier.CopyWithOption(&in, r, copier.Option{IgnoreEmpty: true}); err != nil {
		return commands.ProductInput{}, err
	}
	in.IsVisible = patch.Coalesce(r.IsVisible, true)
	return in, nil
}

// UpdateProductRequest is a partial update: absent keys keep the stored value
// and an explicit null original_price clears it.
type UpdateProductRequest struct {
	NameEN        *string                     `json:"name_en"`
	NameAR        *string                     `json:"name_ar"`
	DescriptionEN *string                     `json:"description_en"`
	DescriptionAR *string                     `json:"description_ar"`
	Category      *string                     `json:"category"`
	Price         *money.Money                `json:"price"`
	OriginalPrice patch.Optional[money.Money] `json:"original_price"`
	Quantity      *int                        `json:"quantity" binding:"omitempty,min=0"`
	Images        *[]string                   `json:"images"`
	IsVisible     *bool                       `json:"is_visible"`
}

func (r *UpdateProductRequest) ToPatch() commands.ProductPatch {
	return commands.ProductPatch{
		NameEN:        r.NameEN,
		NameAR:        r.NameAR,
		DescriptionEN: r.DescriptionEN,
		DescriptionAR: r.DescriptionAR,
		Category:      r.Category,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Quantity:      r.Quantity,
		Images:        r.Images,
		IsVisible:     r.IsVisible,
	}
}
