package repository

import (
	"context"
	"time"

	"trainerhub/internal/domain"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// List returns messages of a booking with id > afterID, oldest first.
func (r *MessageRepository) List(ctx context.Context, bookingID, afterID int64, limit int) ([]domain.Message, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = MaxLimit
	}
	var rows []domain.Message
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND id > ?", bookingID, afterID).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// MarkRead marks every unread message addressed to userID in the booking as read.
func (r *MessageRepository) MarkRead(ctx context.Context, bookingID, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("booking_id = ? AND recipient_id = ? AND read_at IS NULL", bookingID, userID).
		Update("read_at", time.Now().UTC())
	return res.RowsAffected, res.Error
}

func (r *MessageRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Count(&cnt).Error
	return cnt, err
}
