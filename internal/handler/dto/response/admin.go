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

type LoginResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		ID:          r.AdminID,
		Username:    r.Username,
		AccessToken: r.Token,
		TokenType:   "bearer",
		ExpiresAt:   r.ExpiresAt,
	}
}

type CustomerSummaryResponse struct {
	Phone           string      `json:"phone"`
	Name            string      `json:"name"`
	City            string      `json:"city"`
	Address         string      `json:"address"`
	TotalOrders     int         `json:"total_orders"`
	CancelledOrders int         `json:"cancelled_orders"`
	TotalSpent      money.Money `json:"total_spent"`
	LastOrder       time.Time   `json:"last_order"`
	IsBlocked       bool        `json:"is_blocked"`
}

func FromCustomerSummaries(views []*queries.CustomerSummaryView) ([]*CustomerSummaryResponse, error) {
	res := make([]*CustomerSummaryResponse, 0, len(views))
	if err := copier.Copy(&res, views); err != nil {
		return nil, errs.Wrap(err, "map customer summaries")
	}
	return res, nil
}

type DashboardStatsResponse struct {
	TotalProducts  int         `json:"total_products"`
	TotalOrders    int         `json:"total_orders"`
	PendingOrders  int         `json:"pending_orders"`
	TotalCustomers int         `json:"total_customers"`
	TotalRevenue   money.Money `json:"total_revenue"`
}

func FromDashboardStats(v *queries.DashboardStatsView) (*DashboardStatsResponse, error) {
	res := &DashboardStatsResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "map dashboard stats")
	}
	return res, nil
}

type MessageResponse struct {
	Message string `json:"message"`
}
