package repository

import (
	"context"
	"strings"
	"time"

	"trainerhub/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TrainerRepository struct {
	db *gorm.DB
}

func NewTrainerRepository(db *gorm.DB) *TrainerRepository {
	return &TrainerRepository{db: db}
}

type TrainerSort string

const (
	SortRating TrainerSort = "rating"
	SortPrice  TrainerSort = "price"
	SortNewest TrainerSort = "newest"
)

type TrainerFilter struct {
	Status    domain.TrainerStatus
	Specialty string
	City      string
	MinRating *float64
	MaxPrice  *float64
	Query     string
	Sort      TrainerSort
	Page      Page
}

const fromPriceExpr = "(SELECT MIN(tp.price) FROM trainer_pricing tp WHERE tp.trainer_id = trainers.id AND tp.active = true)"

func (r *TrainerRepository) GetByID(ctx context.Context, id int64) (*domain.Trainer, error) {
	var t domain.Trainer
	if err := r.db.WithContext(ctx).Preload("Profile").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrainerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Trainer, error) {
	var t domain.Trainer
	if err := r.db.WithContext(ctx).Preload("Profile").Where("user_id = ?", userID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrainerRepository) List(ctx context.Context, f TrainerFilter) ([]domain.Trainer, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.Trainer{}).
			Joins("LEFT JOIN profiles ON profiles.user_id = trainers.user_id")
		if f.Status != "" {
			q = q.Where("trainers.status = ?", f.Status)
		}
		if s := strings.TrimSpace(f.Specialty); s != "" {
			q = q.Where(datatypes.JSONArrayQuery("specialties").Contains(strings.ToLower(s)))
		}
		if c := strings.TrimSpace(f.City); c != "" {
			q = q.Where("LOWER(trainers.city) = ?", strings.ToLower(c))
		}
		if f.MinRating != nil {
			q = q.Where("trainers.rating_avg >= ?", *f.MinRating)
		}
		if f.MaxPrice != nil {
			q = q.Where(fromPriceExpr+" <= ?", *f.MaxPrice)
		}
		if s := strings.TrimSpace(f.Query); s != "" {
			like := "%" + strings.ToLower(s) + "%"
			q = q.Where("LOWER(trainers.headline) LIKE ? OR LOWER(profiles.full_name) LIKE ? OR LOWER(profiles.bio) LIKE ?", like, like, like)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base().Select("trainers.*").Preload("Profile")
	switch f.Sort {
	case SortPrice:
		q = q.Order("COALESCE(" + fromPriceExpr + ", 1e12) ASC").Order("trainers.id")
	case SortNewest:
		q = q.Order("trainers.created_at DESC").Order("trainers.id DESC")
	default:
		q = q.Order("trainers.rating_avg DESC").Order("trainers.rating_count DESC").Order("trainers.id")
	}

	var trainers []domain.Trainer
	if err := q.Scopes(paginate(f.Page)).Find(&trainers).Error; err != nil {
		return nil, 0, err
	}
	if err := r.fillFromPrices(ctx, trainers); err != nil {
		return nil, 0, err
	}
	return trainers, total, nil
}

type fromPriceRow struct {
	TrainerID int64
	MinPrice  float64
}

func (r *TrainerRepository) fillFromPrices(ctx context.Context, trainers []domain.Trainer) error {
	if len(trainers) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(trainers))
	for _, t := range trainers {
		ids = append(ids, t.ID)
	}

	var rows []fromPriceRow
	err := r.db.WithContext(ctx).Model(&domain.Pricing{}).
		Select("trainer_id, MIN(price) AS min_price").
		Where("trainer_id IN ? AND active = ?", ids, true).
		Group("trainer_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	prices := make(map[int64]float64, len(rows))
	for _, row := range rows {
		prices[row.TrainerID] = row.MinPrice
	}
	for i := range trainers {
		if p, ok := prices[trainers[i].ID]; ok {
			trainers[i].FromPrice = &p
		}
	}
	return nil
}

func (r *TrainerRepository) Update(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Trainer{}).Where("id = ?", id).Updates(updates).Error
}

// SetStatus moves a trainer to status when its current status is one of from.
func (r *TrainerRepository) SetStatus(ctx context.Context, id int64, from []domain.TrainerStatus, to domain.TrainerStatus, reason string, adminID int64) error {
	updates := map[string]any{"status": to, "status_reason": reason}
	if to == domain.TrainerApproved {
		updates["approved_at"] = time.Now().UTC()
		updates["approved_by"] = adminID
	}
	return casUpdate(r.db.WithContext(ctx), &domain.Trainer{}, updates, "id = ? AND status IN ?", id, from)
}

func (r *TrainerRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countBy(r.db.WithContext(ctx), &domain.Trainer{}, "status")
}

func (r *TrainerRepository) ListPricing(ctx context.Context, trainerID int64, activeOnly bool) ([]domain.Pricing, error) {
	q := r.db.WithContext(ctx).Where("trainer_id = ?", trainerID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var rows []domain.Pricing
	err := q.Order("price ASC").Order("id").Find(&rows).Error
	return rows, err
}

func (r *TrainerRepository) GetPricing(ctx context.Context, id int64) (*domain.Pricing, error) {
	var p domain.Pricing
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TrainerRepository) CreatePricing(ctx context.Context, p *domain.Pricing) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *TrainerRepository) SavePricing(ctx context.Context, p *domain.Pricing) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *TrainerRepository) DeactivatePricing(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Pricing{}).Where("id = ?", id).Update("active", false).Error
}

func (r *TrainerRepository) ListAvailability(ctx context.Context, trainerID int64) ([]domain.AvailabilitySlot, error) {
	var slots []domain.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("weekday").Order("start_time").
		Find(&slots).Error
	return slots, err
}

// ReplaceAvailability swaps the whole weekly schedule in one transaction.
func (r *TrainerRepository) ReplaceAvailability(ctx context.Context, trainerID int64, slots []domain.AvailabilitySlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trainer_id = ?", trainerID).Delete(&domain.AvailabilitySlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		for i := range slots {
			slots[i].ID = 0
			slots[i].TrainerID = trainerID
		}
		return tx.Create(&slots).Error
	})
}
