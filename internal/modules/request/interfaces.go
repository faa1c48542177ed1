package request

import (
	"context"

	"trainerhub/internal/domain"
	"trainerhub/internal/modules/settings"
	"trainerhub/internal/repository"
)

type RequestRepository interface {
	CreateRequest(ctx context.Context, req *domain.TrainingRequest) error
	GetRequest(ctx context.Context, id int64) (*domain.TrainingRequest, error)
	ListRequests(ctx context.Context, f repository.RequestFilter) ([]domain.TrainingRequest, int64, error)
	UpdateRequestStatus(ctx context.Context, id int64, from, to domain.RequestStatus) error

	CreateApplication(ctx context.Context, app *domain.TrainingApplication) error
	GetApplication(ctx context.Context, id int64) (*domain.TrainingApplication, error)
	ListApplications(ctx context.Context, requestID int64) ([]domain.TrainingApplication, error)
	ListApplicationsByTrainer(ctx context.Context, trainerID int64, p repository.Page) ([]domain.TrainingApplication, int64, error)
	UpdateApplicationStatus(ctx context.Context, id int64, from, to domain.ApplicationStatus) error

	Accept(ctx context.Context, app *domain.TrainingApplication, b *domain.Booking) error
}

type TrainerLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Trainer, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Trainer, error)
}

type SettingsReader interface {
	Current(ctx context.Context) (settings.Settings, error)
}
