package payout

type CreateBatchRequest struct {
	// Empty means every eligible pending payout.
	PayoutIDs []int64 `json:"payout_ids"`
}

type MarkPaidRequest struct {
	Reference string `json:"reference" binding:"required,max=255"`
}

// TrainerPending groups the pending payouts of one trainer.
type TrainerPending struct {
	TrainerID int64   `json:"trainer_id"`
	Count     int     `json:"count"`
	TotalNet  float64 `json:"total_net"`
	PayoutIDs []int64 `json:"payout_ids"`
}
