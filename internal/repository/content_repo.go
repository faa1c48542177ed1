package repository

import (
	"context"

	"trainerhub/internal/domain"

	"gorm.io/gorm"
)

// ContentRepository serves the careers page and success stories.
type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) ListJobs(ctx context.Context, activeOnly bool) ([]domain.Job, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var rows []domain.Job
	err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *ContentRepository) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	var j domain.Job
	if err := r.db.WithContext(ctx).First(&j, id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *ContentRepository) SaveJob(ctx context.Context, j *domain.Job) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *ContentRepository) DeleteJob(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Job{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContentRepository) ListStories(ctx context.Context, publishedOnly bool) ([]domain.SuccessStory, error) {
	q := r.db.WithContext(ctx)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var rows []domain.SuccessStory
	err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *ContentRepository) GetStory(ctx context.Context, id int64) (*domain.SuccessStory, error) {
	var s domain.SuccessStory
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ContentRepository) SaveStory(ctx context.Context, s *domain.SuccessStory) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ContentRepository) DeleteStory(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.SuccessStory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
