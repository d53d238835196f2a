package response

import (
	"time"

	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type NotifyRequestResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Phone     string    `json:"phone"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductDemandResponse struct {
	ProductID     uuid.UUID               `json:"product_id"`
	ProductNameEN string                  `json:"product_name_en"`
	ProductNameAR string                  `json:"product_name_ar"`
	Count         int                     `json:"count"`
	Requests      []NotifyRequestResponse `json:"requests"`
}

func FromNotifyRequestView(v *queries.NotifyRequestView) (*NotifyRequestResponse, error) {
	res := &NotifyRequestResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "map notify request response")
	}
	return res, nil
}

func FromNotifyRequestViews(views []*queries.NotifyRequestView) ([]*NotifyRequestResponse, error) {
	res := make([]*NotifyRequestResponse, 0, len(views))
	if err := copier.Copy(&res, views); err != nil {
		return nil, errs.Wrap(err, "map notify request responses")
	}
	return res, nil
}

func FromProductDemandViews(views []*queries.ProductDemandView) ([]*ProductDemandResponse, error) {
	res := make([]*ProductDemandResponse, 0, len(views))
	if err := copier.Copy(&res, views); err != nil {
		return nil, errs.Wrap(err, "map product demand responses")
	}
	return res, nil
}
