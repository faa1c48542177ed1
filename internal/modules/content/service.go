package content

import (
	"context"
	"strings"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/pkg/validator"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(v any) error {
	if errs := validator.Validate(v); errs != nil {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func notFound(err error) error {
	if database.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

// ---- jobs ----

func (s *Service) ListJobs(ctx context.Context, activeOnly bool) ([]domain.Job, error) {
	return s.repo.ListJobs(ctx, activeOnly)
}

func (s *Service) CreateJob(ctx context.Context, req JobRequest) (*domain.Job, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	j := &domain.Job{Active: true}
	applyJob(j, req)
	if err := s.repo.SaveJob(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Service) UpdateJob(ctx context.Context, id int64, req JobRequest) (*domain.Job, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	j, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	applyJob(j, req)
	if err := s.repo.SaveJob(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Service) DeleteJob(ctx context.Context, id int64) error {
	return notFound(s.repo.DeleteJob(ctx, id))
}

func applyJob(j *domain.Job, req JobRequest) {
	j.Title = strings.TrimSpace(req.Title)
	j.Location = strings.TrimSpace(req.Location)
	j.Description = strings.TrimSpace(req.Description)
	if req.Active != nil {
		j.Active = *req.Active
	}
}

// ---- success stories ----

func (s *Service) ListStories(ctx context.Context, publishedOnly bool) ([]domain.SuccessStory, error) {
	return s.repo.ListStories(ctx, publishedOnly)
}

func (s *Service) CreateStory(ctx context.Context, req StoryRequest) (*domain.SuccessStory, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	st := &domain.SuccessStory{}
	applyStory(st, req)
	if err := s.repo.SaveStory(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) UpdateStory(ctx context.Context, id int64, req StoryRequest) (*domain.SuccessStory, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	st, err := s.repo.GetStory(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	applyStory(st, req)
	if err := s.repo.SaveStory(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) DeleteStory(ctx context.Context, id int64) error {
	return notFound(s.repo.DeleteStory(ctx, id))
}

func applyStory(st *domain.SuccessStory, req StoryRequest) {
	st.ClientName = strings.TrimSpace(req.ClientName)
	st.TrainerID = req.TrainerID
	st.Title = strings.TrimSpace(req.Title)
	st.Story = strings.TrimSpace(req.Story)
	st.ImageURL = strings.TrimSpace(req.ImageURL)
	if req.Published != nil {
		st.Published = *req.Published
	}
}
