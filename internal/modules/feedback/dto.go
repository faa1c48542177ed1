package feedback

import (
	"time"

	"trainerhub/internal/domain"
)

type CreateLinkRequest struct {
	BookingID int64 `json:"booking_id" binding:"required,gt=0"`
}

type SubmitRequest struct {
	Name    string `json:"name" binding:"max=255"`
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// LinkInfo is what an anonymous respondent sees before submitting.
type LinkInfo struct {
	TrainerName string    `json:"trainer_name"`
	SessionDate time.Time `json:"session_date"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type ResponsesPage struct {
	Responses     []domain.FeedbackResponse `json:"responses"`
	Total         int64                     `json:"total"`
	AverageRating float64                   `json:"average_rating"`
}
