package repository

import (
	"context"
	"strings"
	"time"

	"trainerhub/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type UserFilter struct {
	Role   domain.UserRole
	Banned *bool
	Query  string
	Page   Page
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Create stores the user together with its profile, and the trainer row when t is not nil.
func (r *UserRepository) Create(ctx context.Context, u *domain.User, p *domain.Profile, t *domain.Trainer) error {
	u.Email = normalizeEmail(u.Email)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(u).Error; err != nil {
			return err
		}
		p.UserID = u.ID
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		u.Profile = p
		if t == nil {
			return nil
		}
		t.UserID = u.ID
		return tx.Omit("User", "Profile", "Pricing").Create(t).Error
	})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", normalizeEmail(email)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, updates map[string]any) (*domain.Profile, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("user_id = ?", userID).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	var p domain.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]domain.User, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&domain.User{})
		if f.Role != "" {
			q = q.Where("role = ?", f.Role)
		}
		if f.Banned != nil {
			q = q.Where("is_banned = ?", *f.Banned)
		}
		if s := strings.TrimSpace(f.Query); s != "" {
			q = q.Where("email LIKE ?", "%"+strings.ToLower(s)+"%")
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	err := base().Preload("Profile").Order("id DESC").Scopes(paginate(f.Page)).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) SetBanned(ctx context.Context, id int64, banned bool, reason string) error {
	updates := map[string]any{"is_banned": banned, "ban_reason": reason, "banned_at": nil}
	if banned {
		updates["banned_at"] = time.Now().UTC()
	} else {
		updates["ban_reason"] = ""
	}
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	return countBy(r.db.WithContext(ctx), &domain.User{}, "role")
}
