package auth

import "trainerhub/internal/domain"

type RegisterClientRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type RegisterTrainerRequest struct {
	RegisterClientRequest
	Headline          string   `json:"headline" binding:"required,min=3,max=255"`
	City              string   `json:"city" binding:"omitempty,max=128"`
	Specialties       []string `json:"specialties" binding:"omitempty,max=20,dive,min=2,max=64"`
	YearsOfExperience int      `json:"years_of_experience" binding:"gte=0,lte=70"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" binding:"omitempty,min=2,max=255"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
	City      *string `json:"city" binding:"omitempty,max=128"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=1024"`
	Bio       *string `json:"bio" binding:"omitempty,max=4000"`
}

type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}
