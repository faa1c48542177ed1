// Package seed fills a database with demo accounts for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"trainerhub/internal/domain"
	"trainerhub/internal/repository"
)

type Options struct {
	// Reset wipes every application table before inserting.
	Reset    bool
	Password string
}

type Summary struct {
	Admins   int
	Clients  int
	Trainers int
	Pricing  int
	Jobs     int
	Stories  int
}

type trainerSeed struct {
	email, name, city, headline string
	specialties                 []string
	years                       int
	status                      domain.TrainerStatus
	pricing                     []domain.Pricing
}

var trainers = []trainerSeed{
	{
		email: "anna.coach@trainerhub.local", name: "Anna Petrova", city: "almaty",
		headline: "Strength and mobility for beginners", specialties: []string{"strength", "mobility"},
		years: 6, status: domain.TrainerApproved,
		pricing: []domain.Pricing{
			{Title: "Single session", SessionType: domain.SessionSingle, Sessions: 1, DurationMinutes: 60, Price: 40},
			{Title: "Ten pack", SessionType: domain.SessionPackage, Sessions: 10, DurationMinutes: 60, Price: 350},
		},
	},
	{
		email: "timur.runs@trainerhub.local", name: "Timur Akhmetov", city: "astana",
		headline: "Marathon prep and running technique", specialties: []string{"running", "endurance"},
		years: 9, status: domain.TrainerApproved,
		pricing: []domain.Pricing{
			{Title: "Track session", SessionType: domain.SessionSingle, Sessions: 1, DurationMinutes: 90, Price: 55},
		},
	},
	{
		email: "lena.yoga@trainerhub.local", name: "Lena Kim", city: "almaty",
		headline: "Hatha yoga, waiting for approval", specialties: []string{"yoga"},
		years: 2, status: domain.TrainerPending,
	},
}

var clientNames = []string{"Asel Nurlanova", "Bekzat Omarov", "Dina Seitova"}

func Run(ctx context.Context, db *gorm.DB, opts Options) (*Summary, error) {
	if opts.Password == "" {
		opts.Password = "password123"
	}
	if opts.Reset {
		if err := reset(ctx, db); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	users := repository.NewUserRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	sum := &Summary{}

	admin := &domain.User{Email: "admin@trainerhub.local", PasswordHash: string(hash), Role: domain.RoleAdmin}
	if err := users.Create(ctx, admin, &domain.Profile{FullName: "Platform Admin"}, nil); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	sum.Admins++

	for i, name := range clientNames {
		u := &domain.User{
			Email:        fmt.Sprintf("client%d@trainerhub.local", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
		}
		p := &domain.Profile{FullName: name, Phone: fmt.Sprintf("+7 777 123 45%02d", i+67), City: "almaty"}
		if err := users.Create(ctx, u, p, nil); err != nil {
			return nil, fmt.Errorf("create client %s: %w", u.Email, err)
		}
		sum.Clients++
	}

	var firstApproved int64
	for _, ts := range trainers {
		u := &domain.User{Email: ts.email, PasswordHash: string(hash), Role: domain.RoleTrainer}
		t := &domain.Trainer{
			Headline:          ts.headline,
			Specialties:       datatypes.JSONSlice[string](domain.NormalizeSpecialties(ts.specialties)),
			City:              ts.city,
			YearsOfExperience: ts.years,
			Status:            ts.status,
		}
		if err := users.Create(ctx, u, &domain.Profile{FullName: ts.name, City: ts.city}, t); err != nil {
			return nil, fmt.Errorf("create trainer %s: %w", ts.email, err)
		}
		sum.Trainers++

		if ts.status == domain.TrainerApproved {
			if firstApproved == 0 {
				firstApproved = t.ID
			}
			if err := trainerRepo.Update(ctx, t.ID, map[string]any{"approved_at": db.NowFunc(), "approved_by": admin.ID}); err != nil {
				return nil, err
			}
		}

		for _, p := range ts.pricing {
			p.TrainerID = t.ID
			p.Active = true
			if err := trainerRepo.CreatePricing(ctx, &p); err != nil {
				return nil, fmt.Errorf("create pricing: %w", err)
			}
			sum.Pricing++
		}

		slots := make([]domain.AvailabilitySlot, 0, 5)
		for wd := 1; wd <= 5; wd++ {
			slots = append(slots, domain.AvailabilitySlot{Weekday: wd, StartTime: "09:00", EndTime: "18:00"})
		}
		if err := trainerRepo.ReplaceAvailability(ctx, t.ID, slots); err != nil {
			return nil, fmt.Errorf("create availability: %w", err)
		}
	}

	jobs := []domain.Job{
		{Title: "Personal trainer, part time", Location: "almaty", Description: "Evening sessions with our corporate clients.", Active: true},
		{Title: "Community manager", Location: "remote", Description: "Help trainers and clients get the most out of the platform.", Active: true},
	}
	if err := db.WithContext(ctx).Create(&jobs).Error; err != nil {
		return nil, fmt.Errorf("create jobs: %w", err)
	}
	sum.Jobs = len(jobs)

	story := domain.SuccessStory{
		ClientName: clientNames[0],
		TrainerID:  &firstApproved,
		Title:      "First pull-up at 35",
		Story:      "Three months of twice-weekly sessions and a lot of patience.",
		Published:  true,
	}
	if err := db.WithContext(ctx).Create(&story).Error; err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	sum.Stories = 1

	slog.Info("seed completed",
		slog.Int("clients", sum.Clients),
		slog.Int("trainers", sum.Trainers),
		slog.Int("pricing", sum.Pricing),
	)
	return sum, nil
}

// reset deletes children before parents.
func reset(ctx context.Context, db *gorm.DB) error {
	models := domain.Models()
	for i := len(models) - 1; i >= 0; i-- {
		err := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error
		if err != nil {
			return fmt.Errorf("reset %T: %w", models[i], err)
		}
	}
	return nil
}
