package chat

import (
	"context"
	"strings"
	"unicode/utf8"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/repository"
)

const (
	maxBodyRunes = 4000
	defaultLimit = 50
)

type Service struct {
	messages MessageRepository
	bookings BookingReader
	push     Pusher
}

func NewService(messages MessageRepository, bookings BookingReader, push Pusher) *Service {
	return &Service{messages: messages, bookings: bookings, push: push}
}

// counterpart returns the other participant of the booking, or ErrNotParticipant.
func (s *Service) counterpart(ctx context.Context, bookingID, userID int64) (int64, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if database.IsNotFound(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if b.Trainer == nil {
		return 0, ErrNotFound
	}

	switch userID {
	case b.ClientID:
		return b.Trainer.UserID, nil
	case b.Trainer.UserID:
		return b.ClientID, nil
	}
	return 0, ErrNotParticipant
}

// Send stores the message and pushes it to the recipient when online.
func (s *Service) Send(ctx context.Context, bookingID, senderID int64, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if n := utf8.RuneCountInString(body); n == 0 || n > maxBodyRunes {
		return nil, ErrInvalidBody
	}

	recipientID, err := s.counterpart(ctx, bookingID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		BookingID:   bookingID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.push != nil {
		s.push.SendToUser(recipientID, Event{Type: EventMessage, BookingID: bookingID, Payload: msg})
	}
	return msg, nil
}

// List returns messages with id > afterID, oldest first.
func (s *Service) List(ctx context.Context, bookingID, userID, afterID int64, limit int) ([]domain.Message, error) {
	if _, err := s.counterpart(ctx, bookingID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > repository.MaxLimit {
		limit = repository.MaxLimit
	}
	if afterID < 0 {
		afterID = 0
	}
	return s.messages.List(ctx, bookingID, afterID, limit)
}

func (s *Service) MarkRead(ctx context.Context, bookingID, userID int64) (int64, error) {
	otherID, err := s.counterpart(ctx, bookingID, userID)
	if err != nil {
		return 0, err
	}
	n, err := s.messages.MarkRead(ctx, bookingID, userID)
	if err != nil {
		return 0, err
	}
	if n > 0 && s.push != nil {
		s.push.SendToUser(otherID, Event{Type: EventRead, BookingID: bookingID, Payload: map[string]int64{"reader_id": userID}})
	}
	return n, nil
}

func (s *Service) Unread(ctx context.Context, userID int64) (int64, error) {
	return s.messages.CountUnread(ctx, userID)
}

// Typing relays a typing indicator. Nothing is stored.
func (s *Service) Typing(ctx context.Context, bookingID, userID int64) error {
	otherID, err := s.counterpart(ctx, bookingID, userID)
	if err != nil {
		return err
	}
	if s.push != nil {
		s.push.SendToUser(otherID, Event{Type: EventTyping, BookingID: bookingID, Payload: map[string]int64{"user_id": userID}})
	}
	return nil
}
