package auth

import (
	"context"
	"strings"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Service contains all business logic for authentication
type Service struct {
	users UserRepository
	jwt   TokenIssuer
}

func NewService(users UserRepository, jwt TokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) RegisterClient(ctx context.Context, req RegisterClientRequest) (*AuthResult, error) {
	user, profile, err := s.newAccount(ctx, req, domain.RoleClient)
	if err != nil {
		return nil, err
	}
	if err := s.create(ctx, user, profile, nil); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// RegisterTrainer creates the account and a pending trainer listing in one transaction.
func (s *Service) RegisterTrainer(ctx context.Context, req RegisterTrainerRequest) (*AuthResult, error) {
	user, profile, err := s.newAccount(ctx, req.RegisterClientRequest, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}
	profile.City = strings.TrimSpace(req.City)

	trainer := &domain.Trainer{
		Headline:          strings.TrimSpace(req.Headline),
		City:              strings.TrimSpace(req.City),
		Specialties:       datatypes.NewJSONSlice(domain.NormalizeSpecialties(req.Specialties)),
		Photos:            datatypes.NewJSONSlice([]string{}),
		YearsOfExperience: req.YearsOfExperience,
		Status:            domain.TrainerPending,
	}
	if err := s.create(ctx, user, profile, trainer); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}
	return s.issue(user)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.Profile, error) {
	updates := map[string]any{}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, ErrValidation
		}
		updates["full_name"] = name
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.City != nil {
		updates["city"] = strings.TrimSpace(*req.City)
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = strings.TrimSpace(*req.AvatarURL)
	}
	if req.Bio != nil {
		updates["bio"] = strings.TrimSpace(*req.Bio)
	}

	p, err := s.users.UpdateProfile(ctx, userID, updates)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) newAccount(ctx context.Context, req RegisterClientRequest, role domain.UserRole) (*domain.User, *domain.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, nil, err
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}
	user := &domain.User{Email: email, PasswordHash: hash, Role: role}
	profile := &domain.Profile{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
	}
	return user, profile, nil
}

func (s *Service) create(ctx context.Context, u *domain.User, p *domain.Profile, t *domain.Trainer) error {
	if err := s.users.Create(ctx, u, p, t); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (s *Service) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &AuthResult{User: user, Token: token}, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailAlreadyExists
	case database.IsNotFound(err):
		return nil
	default:
		return err
	}
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
