package request

import "github.com/google/uuid"

type NotifyMeRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Phone     string    `json:"phone" binding:"required"`
	Name      *string   `json:"name"`
}
