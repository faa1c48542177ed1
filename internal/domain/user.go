package domain

import "time"

type UserRole string

const (
	RoleClient  UserRole = "client"
	RoleTrainer UserRole = "trainer"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleClient, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"size:255;not null;uniqueIndex" validate:"required,email"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         UserRole   `json:"role" gorm:"size:16;not null;index"`
	IsBanned     bool       `json:"is_banned" gorm:"not null;default:false"`
	BannedAt     *time.Time `json:"banned_at,omitempty"`
	BanReason    string     `json:"ban_reason,omitempty" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }

// Profile holds display data shared by clients, trainers and admins.
type Profile struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex"`
	FullName  string    `json:"full_name" gorm:"size:255;not null"`
	Phone     string    `json:"phone,omitempty" gorm:"size:32"`
	City      string    `json:"city,omitempty" gorm:"size:128;index"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Bio       string    `json:"bio,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
