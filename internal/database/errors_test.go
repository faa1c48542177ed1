package database

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"trainerhub/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestSQLiteUniqueIndex(t *testing.T) {
	db := NewTestDB(t)

	u := domain.User{Email: "a@example.com", PasswordHash: "x", Role: domain.RoleClient}
	assert.NoError(t, db.Create(&u).Error)

	dup := domain.User{Email: "a@example.com", PasswordHash: "y", Role: domain.RoleClient}
	err := db.Create(&dup).Error
	assert.True(t, IsUniqueViolation(err), "got %v", err)
}
