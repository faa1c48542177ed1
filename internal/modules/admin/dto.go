package admin

import (
	"time"

	"trainerhub/internal/ledger"
)

type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type UserListFilter struct {
	Role   string
	Banned *bool
	Query  string
}

type BookingListFilter struct {
	Status    string
	TrainerID int64
	ClientID  int64
	From      *time.Time
	To        *time.Time
}

type StatisticsResponse struct {
	UsersByRole      map[string]int64 `json:"users_by_role"`
	TrainersByStatus map[string]int64 `json:"trainers_by_status"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	PendingApprovals int64            `json:"pending_approvals"`
	Revenue          *ledger.Report   `json:"revenue"`
}
