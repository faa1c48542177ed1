package payment

type CheckoutRequest struct {
	BookingID int64 `json:"booking_id" binding:"required,gt=0" example:"123"`
}

type CheckoutResponse struct {
	InvoiceID   int64  `json:"invoice_id" example:"1700000000000000000"`
	Amount      string `json:"amount" example:"2500.00"`
	CheckoutURL string `json:"checkout_url" example:"https://checkout.example.com/pay?..."`
	Status      string `json:"status" example:"created"`
}

type StatusResponse struct {
	InvoiceID int64  `json:"invoice_id"`
	BookingID int64  `json:"booking_id"`
	Status    string `json:"status"`
}
