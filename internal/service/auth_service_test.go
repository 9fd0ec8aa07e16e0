package service

import (
	"testing"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedEmployee(t *testing.T, db *gorm.DB, email, password string) *model.Employee {
	t.Helper()
	emp := &model.Employee{
		Email:    email,
		FullName: "Dana",
		IsActive: true,
	}
	require.NoError(t, emp.SetPassword(password))
	require.NoError(t, db.Create(emp).Error)
	return emp
}

func TestLoginRotatesTokenVersion(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewEmployeeRepo(db))
	emp := seedEmployee(t, db, "dana@example.com", "secret123")

	first, err := svc.Login("dana@example.com", "secret123")
	require.NoError(t, err)
	_, err = svc.ValidateToken(first.Token)
	require.NoError(t, err)

	// Second login invalidates the first session
	second, err := svc.Login("dana@example.com", "secret123")
	require.NoError(t, err)
	_, err = svc.ValidateToken(first.Token)
	require.Error(t, err)
	_, err = svc.ValidateToken(second.Token)
	require.NoError(t, err)

	// The rotation landed as column updates on the row
	var got model.Employee
	require.NoError(t, db.First(&got, "id = ?", emp.ID).Error)
	assert.NotEmpty(t, got.TokenVersion)
	assert.NotNil(t, got.LastSeenAt)
}

func TestLoginRejectsBadCredentialsAndInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewEmployeeRepo(db))
	emp := seedEmployee(t, db, "dana@example.com", "secret123")

	_, err := svc.Login("dana@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, db.Model(emp).Update("is_active", false).Error)
	_, err = svc.Login("dana@example.com", "secret123")
	require.ErrorIs(t, err, ErrEmployeeInactive)
}

func TestResetPasswordUpdatesHash(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewEmployeeRepo(db))
	emp := seedEmployee(t, db, "dana@example.com", "secret123")

	require.ErrorIs(t, svc.ResetPassword("dana@example.com", "wrong", "newpass99"), ErrWrongPassword)
	require.NoError(t, svc.ResetPassword("dana@example.com", "secret123", "newpass99"))

	var got model.Employee
	require.NoError(t, db.First(&got, "id = ?", emp.ID).Error)
	assert.True(t, got.CheckPassword("newpass99"))
	assert.False(t, got.CheckPassword("secret123"))
}
