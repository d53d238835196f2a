package response

import (
	"time"

	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ProductResponse struct {
	ID            uuid.UUID    `json:"id"`
	NameEN        string       `json:"name_en"`
	NameAR        string       `json:"name_ar"`
	DescriptionEN string       `json:"description_en"`
	DescriptionAR string       `json:"description_ar"`
	Category      string       `json:"category"`
	Price         money.Money  `json:"price"`
	OriginalPrice *money.Money `json:"original_price"`
	Quantity      int          `json:"quantity"`
	Images        []string     `json:"images"`
	IsVisible     bool         `json:"is_visible"`
	CreatedAt     time.Time    `json:"created_at"`
}

func FromProductView(v *queries.ProductView) (*ProductResponse, error) {
	res := &ProductResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "map product response")
	}
	if res.Images == nil {
		res.Images = []string{}
	}
	return res, nil
}

func FromProductViews(views []*queries.ProductView) ([]*ProductResponse, error) {
	res := make([]*ProductResponse, len(views))
	for i, v := range views {
		r, err := FromProductView(v)
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}

type CouponResponse struct {
	ID                 uuid.UUID    `json:"id"`
	Code               string       `json:"code"`
	DiscountPercentage float64      `json:"discount_percentage"`
	MinOrderValue      *money.Money `json:"min_order_value"`
	ExpiryDate         *time.Time   `json:"expiry_date"`
	IsActive           bool         `json:"is_active"`
	UsageCount         int          `json:"usage_count"`
	CreatedAt          time.Time    `json:"created_at"`
}

func FromCouponView(v *queries.CouponView) (*CouponResponse, error) {
	res := &CouponResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "map coupon response")
	}
	return res, nil
}

func FromCouponViews(views []*queries.CouponView) ([]*CouponResponse, error) {
	res := make([]*CouponResponse, len(views))
	for i, v := range views {
		r, err := FromCouponView(v)
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}

// CouponValidationResponse reports a rejected code with valid=false and zero amounts.
type CouponValidationResponse struct {
	Valid              bool        `json:"valid"`
	DiscountPercentage float64     `json:"discount_percentage"`
	DiscountAmount     money.Money `json:"discount_amount"`
	Message            string      `json:"message"`
}

func FromCouponValidation(v *commands.CouponValidation) *CouponValidationResponse {
	return &CouponValidationResponse{
		Valid:              v.Valid,
		DiscountPercentage: v.DiscountPercentage.InexactFloat64(),
		DiscountAmount:     v.DiscountAmount,
		Message:            v.Message,
	}
}
