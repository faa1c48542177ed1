package content

import (
	"context"

	"trainerhub/internal/domain"
)

type Repository interface {
	ListJobs(ctx context.Context, activeOnly bool) ([]domain.Job, error)
	GetJob(ctx context.Context, id int64) (*domain.Job, error)
	SaveJob(ctx context.Context, j *domain.Job) error
	DeleteJob(ctx context.Context, id int64) error

	ListStories(ctx context.Context, publishedOnly bool) ([]domain.SuccessStory, error)
	GetStory(ctx context.Context, id int64) (*domain.SuccessStory, error)
	SaveStory(ctx context.Context, s *domain.SuccessStory) error
	DeleteStory(ctx context.Context, id int64) error
}
