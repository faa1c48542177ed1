package repository

import (
	"errors"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	// ErrStale is returned when a conditional update matched no row because
	// the row was already moved to another state.
	ErrStale = errors.New("row state changed")
	// ErrOverlap is returned when a booking would overlap another active booking of the trainer.
	ErrOverlap = errors.New("booking overlaps an existing booking")
)

// Page is 1-based pagination input.
type Page struct {
	Page  int
	Limit int
}

func NewPage(page, limit int) Page {
	p := Page{Page: page, Limit: limit}
	p.normalize()
	return p
}

func (p *Page) normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

func (p Page) Offset() int {
	p.normalize()
	return (p.Page - 1) * p.Limit
}

func paginate(p Page) func(db *gorm.DB) *gorm.DB {
	p.normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(p.Limit).Offset(p.Offset())
	}
}

// casUpdate updates rows matching where and fails with ErrStale when none matched.
func casUpdate(tx *gorm.DB, model any, updates map[string]any, where string, args ...any) error {
	res := tx.Model(model).Where(where, args...).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

type countRow struct {
	GroupKey string
	Total    int64
}

func countBy(db *gorm.DB, model any, column string) (map[string]int64, error) {
	var rows []countRow
	err := db.Model(model).
		Select(column + " AS group_key, COUNT(1) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.GroupKey] = r.Total
	}
	return out, nil
}
