package request

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type BlockCustomerRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
