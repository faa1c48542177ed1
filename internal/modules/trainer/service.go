package trainer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/pkg/validator"
	"trainerhub/internal/repository"

	"gorm.io/datatypes"
)

const recentReviews = 10

type Service struct {
	trainers TrainerRepository
	reviews  ReviewLister
}

func NewService(trainers TrainerRepository, reviews ReviewLister) *Service {
	return &Service{trainers: trainers, reviews: reviews}
}

/* ---------- PUBLIC ---------- */

// List returns approved trainers only.
func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Trainer, int64, error) {
	f := repository.TrainerFilter{
		Status:    domain.TrainerApproved,
		Specialty: q.Specialty,
		City:      q.City,
		MinRating: q.MinRating,
		MaxPrice:  q.MaxPrice,
		Query:     q.Query,
		Sort:      parseSort(q.Sort),
		Page:      repository.NewPage(q.Page, q.Limit),
	}
	return s.trainers.List(ctx, f)
}

func parseSort(v string) repository.TrainerSort {
	switch repository.TrainerSort(strings.ToLower(strings.TrimSpace(v))) {
	case repository.SortPrice:
		return repository.SortPrice
	case repository.SortNewest:
		return repository.SortNewest
	default:
		return repository.SortRating
	}
}

func (s *Service) Get(ctx context.Context, trainerID int64) (*Detail, error) {
	t, err := s.trainers.GetByID(ctx, trainerID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !t.Bookable() {
		return nil, ErrNotFound
	}

	pricing, err := s.trainers.ListPricing(ctx, t.ID, true)
	if err != nil {
		return nil, err
	}
	slots, err := s.trainers.ListAvailability(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	reviews, _, err := s.reviews.List(ctx, repository.ReviewFilter{
		TrainerID: t.ID,
		Page:      repository.NewPage(1, recentReviews),
	})
	if err != nil {
		return nil, err
	}

	return &Detail{Trainer: t, Pricing: pricing, Availability: slots, Reviews: reviews}, nil
}

/* ---------- SELF ---------- */

func (s *Service) GetMine(ctx context.Context, userID int64) (*domain.Trainer, error) {
	t, err := s.trainers.GetByUserID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNoTrainerProfile
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateMine(ctx context.Context, userID int64, req UpdateTrainerRequest) (*domain.Trainer, error) {
	t, err := s.GetMine(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Headline != nil {
		updates["headline"] = strings.TrimSpace(*req.Headline)
	}
	if req.City != nil {
		updates["city"] = strings.TrimSpace(*req.City)
	}
	if req.Specialties != nil {
		updates["specialties"] = datatypes.NewJSONSlice(domain.NormalizeSpecialties(*req.Specialties))
	}
	if req.YearsOfExperience != nil {
		updates["years_of_experience"] = *req.YearsOfExperience
	}
	if req.Photos != nil {
		updates["photos"] = datatypes.NewJSONSlice(*req.Photos)
	}

	if err := s.trainers.Update(ctx, t.ID, updates); err != nil {
		return nil, err
	}
	return s.trainers.GetByID(ctx, t.ID)
}

/* ---------- PRICING ---------- */

func (s *Service) ListPricing(ctx context.Context, userID int64) ([]domain.Pricing, error) {
	t, err := s.GetMine(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.trainers.ListPricing(ctx, t.ID, false)
}

func (s *Service) CreatePricing(ctx context.Context, userID int64, req PricingRequest) (*domain.Pricing, error) {
	if err := validatePricing(&req); err != nil {
		return nil, err
	}
	t, err := s.GetMine(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &domain.Pricing{
		TrainerID:       t.ID,
		Title:           strings.TrimSpace(req.Title),
		SessionType:     domain.SessionType(req.SessionType),
		Sessions:        req.Sessions,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          req.Active == nil || *req.Active,
	}
	if err := s.trainers.CreatePricing(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePricing(ctx context.Context, userID, pricingID int64, req PricingRequest) (*domain.Pricing, error) {
	if err := validatePricing(&req); err != nil {
		return nil, err
	}
	p, err := s.ownedPricing(ctx, userID, pricingID)
	if err != nil {
		return nil, err
	}

	p.Title = strings.TrimSpace(req.Title)
	p.SessionType = domain.SessionType(req.SessionType)
	p.Sessions = req.Sessions
	p.DurationMinutes = req.DurationMinutes
	p.Price = req.Price
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.trainers.SavePricing(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePricing deactivates the row; bookings keep pointing at it.
func (s *Service) DeletePricing(ctx context.Context, userID, pricingID int64) error {
	p, err := s.ownedPricing(ctx, userID, pricingID)
	if err != nil {
		return err
	}
	return s.trainers.DeactivatePricing(ctx, p.ID)
}

func (s *Service) ownedPricing(ctx context.Context, userID, pricingID int64) (*domain.Pricing, error) {
	t, err := s.GetMine(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.trainers.GetPricing(ctx, pricingID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrPricingNotFound
		}
		return nil, err
	}
	if p.TrainerID != t.ID {
		return nil, ErrForbidden
	}
	return p, nil
}

func validatePricing(req *PricingRequest) error {
	if errs := validator.Validate(req); errs != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPricing, errs)
	}
	if domain.SessionType(req.SessionType) == domain.SessionSingle && req.Sessions != 1 {
		return fmt.Errorf("%w: single session pricing must have sessions=1", ErrInvalidPricing)
	}
	return nil
}

/* ---------- AVAILABILITY ---------- */

func (s *Service) ListAvailability(ctx context.Context, userID int64) ([]domain.AvailabilitySlot, error) {
	t, err := s.GetMine(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.trainers.ListAvailability(ctx, t.ID)
}

func (s *Service) ReplaceAvailability(ctx context.Context, userID int64, req ReplaceAvailabilityRequest) ([]domain.AvailabilitySlot, error) {
	slots, err := buildSlots(req.Slots)
	if err != nil {
		return nil, err
	}
	t, err := s.GetMine(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.trainers.ReplaceAvailability(ctx, t.ID, slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// buildSlots validates the weekly schedule and returns it ordered by weekday and start.
func buildSlots(in []SlotInput) ([]domain.AvailabilitySlot, error) {
	slots := make([]domain.AvailabilitySlot, 0, len(in))
	for i, si := range in {
		if errs := validator.Validate(si); errs != nil {
			return nil, fmt.Errorf("%w: slot %d: %v", ErrInvalidSlot, i, errs)
		}
		// "HH:MM" strings order the same as the times they encode.
		if si.EndTime <= si.StartTime {
			return nil, fmt.Errorf("%w: slot %d: end_time must be after start_time", ErrInvalidSlot, i)
		}
		slots = append(slots, domain.AvailabilitySlot{
			Weekday:   si.Weekday,
			StartTime: si.StartTime,
			EndTime:   si.EndTime,
		})
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Weekday != slots[j].Weekday {
			return slots[i].Weekday < slots[j].Weekday
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.Weekday == cur.Weekday && cur.StartTime < prev.EndTime {
			return nil, fmt.Errorf("%w: weekday %d %s-%s and %s-%s",
				ErrOverlappingSlots, cur.Weekday, prev.StartTime, prev.EndTime, cur.StartTime, cur.EndTime)
		}
	}
	return slots, nil
}
