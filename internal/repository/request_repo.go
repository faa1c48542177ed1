package repository

import (
	"context"
	"strings"

	"trainerhub/internal/domain"

	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type RequestFilter struct {
	ClientID  int64
	Status    domain.RequestStatus
	Specialty string
	City      string
	Page      Page
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req *domain.TrainingRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) GetRequest(ctx context.Context, id int64) (*domain.TrainingRequest, error) {
	var req domain.TrainingRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) ListRequests(ctx context.Context, f RequestFilter) ([]domain.TrainingRequest, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.TrainingRequest{})
		if f.ClientID != 0 {
			q = q.Where("client_id = ?", f.ClientID)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if s := strings.TrimSpace(f.Specialty); s != "" {
			q = q.Where("LOWER(specialty) = ?", strings.ToLower(s))
		}
		if c := strings.TrimSpace(f.City); c != "" {
			q = q.Where("LOWER(city) = ?", strings.ToLower(c))
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.TrainingRequest
	if err := base().Order("created_at DESC").Order("id DESC").Scopes(paginate(f.Page)).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	if err := r.fillApplicationCounts(ctx, rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type applicationCountRow struct {
	RequestID int64
	Total     int
}

func (r *RequestRepository) fillApplicationCounts(ctx context.Context, rows []domain.TrainingRequest) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(rows))
	for _, req := range rows {
		ids = append(ids, req.ID)
	}
	var counts []applicationCountRow
	err := r.db.WithContext(ctx).Model(&domain.TrainingApplication{}).
		Select("request_id, COUNT(1) AS total").
		Where("request_id IN ? AND status <> ?", ids, domain.ApplicationWithdrawn).
		Group("request_id").
		Scan(&counts).Error
	if err != nil {
		return err
	}
	byID := make(map[int64]int, len(counts))
	for _, c := range counts {
		byID[c.RequestID] = c.Total
	}
	for i := range rows {
		rows[i].ApplicationsCount = byID[rows[i].ID]
	}
	return nil
}

func (r *RequestRepository) UpdateRequestStatus(ctx context.Context, id int64, from, to domain.RequestStatus) error {
	return casUpdate(r.db.WithContext(ctx), &domain.TrainingRequest{}, map[string]any{"status": to}, "id = ? AND status = ?", id, from)
}

func (r *RequestRepository) CreateApplication(ctx context.Context, app *domain.TrainingApplication) error {
	return r.db.WithContext(ctx).Omit("Trainer").Create(app).Error
}

func (r *RequestRepository) GetApplication(ctx context.Context, id int64) (*domain.TrainingApplication, error) {
	var app domain.TrainingApplication
	if err := r.db.WithContext(ctx).Preload("Trainer.Profile").First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *RequestRepository) ListApplications(ctx context.Context, requestID int64) ([]domain.TrainingApplication, error) {
	var rows []domain.TrainingApplication
	err := r.db.WithContext(ctx).
		Preload("Trainer.Profile").
		Where("request_id = ?", requestID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *RequestRepository) ListApplicationsByTrainer(ctx context.Context, trainerID int64, p Page) ([]domain.TrainingApplication, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.TrainingApplication{}).Where("trainer_id = ?", trainerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.TrainingApplication
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("created_at DESC").Order("id DESC").
		Scopes(paginate(p)).
		Find(&rows).Error
	return rows, total, err
}

func (r *RequestRepository) UpdateApplicationStatus(ctx context.Context, id int64, from, to domain.ApplicationStatus) error {
	return casUpdate(r.db.WithContext(ctx), &domain.TrainingApplication{}, map[string]any{"status": to}, "id = ? AND status = ?", id, from)
}

// Accept fills the request with the chosen application: the application is
// accepted, its competitors rejected, the request filled and the booking created.
func (r *RequestRepository) Accept(ctx context.Context, app *domain.TrainingApplication, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := casUpdate(tx, &domain.TrainingRequest{}, map[string]any{"status": domain.RequestFilled},
			"id = ? AND status = ?", app.RequestID, domain.RequestOpen)
		if err != nil {
			return err
		}
		if err := createBooking(tx, b); err != nil {
			return err
		}
		err = casUpdate(tx, &domain.TrainingApplication{}, map[string]any{
			"status":     domain.ApplicationAccepted,
			"booking_id": b.ID,
		}, "id = ? AND status = ?", app.ID, domain.ApplicationPending)
		if err != nil {
			return err
		}
		return tx.Model(&domain.TrainingApplication{}).
			Where("request_id = ? AND id <> ? AND status = ?", app.RequestID, app.ID, domain.ApplicationPending).
			Update("status", domain.ApplicationRejected).Error
	})
}
