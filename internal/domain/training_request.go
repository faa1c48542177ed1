package domain

import "time"

type RequestStatus string

const (
	RequestOpen   RequestStatus = "open"
	RequestFilled RequestStatus = "filled"
	RequestClosed RequestStatus = "closed"
)

// TrainingRequest is a job post by a client that trainers apply to.
type TrainingRequest struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	ClientID       int64         `json:"client_id" gorm:"not null;index"`
	Title          string        `json:"title" gorm:"size:255;not null"`
	Description    string        `json:"description" gorm:"type:text"`
	Specialty      string        `json:"specialty,omitempty" gorm:"size:64;index"`
	City           string        `json:"city,omitempty" gorm:"size:128;index"`
	Budget         float64       `json:"budget"`
	PreferredStart *time.Time    `json:"preferred_start,omitempty"`
	Status         RequestStatus `json:"status" gorm:"size:16;not null;index"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	ApplicationsCount int `json:"applications_count" gorm:"-"`
}

func (TrainingRequest) TableName() string { return "training_requests" }

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

type TrainingApplication struct {
	ID            int64             `json:"id" gorm:"primaryKey"`
	RequestID     int64             `json:"request_id" gorm:"not null;uniqueIndex:idx_application_request_trainer"`
	TrainerID     int64             `json:"trainer_id" gorm:"not null;uniqueIndex:idx_application_request_trainer"`
	Message       string            `json:"message" gorm:"type:text"`
	ProposedPrice float64           `json:"proposed_price" gorm:"not null"`
	Status        ApplicationStatus `json:"status" gorm:"size:16;not null;index"`
	BookingID     *int64            `json:"booking_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Trainer *Trainer `json:"trainer,omitempty" gorm:"foreignKey:TrainerID"`
}

func (TrainingApplication) TableName() string { return "training_applications" }
