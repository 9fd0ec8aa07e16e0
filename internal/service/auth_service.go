package service

import (
	"errors"

	"github.com/google/uuid"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/repository"
	"go-boba-pos/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeInactive   = errors.New("employee account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ResetPassword(email, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Heartbeat(employeeID uuid.UUID) error
}

type LoginResponse struct {
	Token      string                 `json:"token"`
	Employee   model.EmployeeResponse `json:"employee"`
	Role       *model.Role            `json:"role"`
	Privileges []string               `json:"privileges"`
}

type TokenValidationResponse struct {
	Employee   model.EmployeeResponse `json:"employee"`
	Role       *model.Role            `json:"role"`
	Privileges []string               `json:"privileges"`
}

type authService struct {
	employeeRepo repository.EmployeeRepository
}

func NewAuthService(employeeRepo repository.EmployeeRepository) AuthService {
	return &authService{employeeRepo: employeeRepo}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find employee by email
	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if employee is active
	if !employee.IsActive {
		return nil, ErrEmployeeInactive
	}

	// 3. Verify password
	if !employee.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	roleCode := ""
	if employee.Role != nil {
		roleCode = employee.Role.Code
	}

	// 4. Single session: rotate the token version on every login.
	// Targeted column updates, not a full row save.
	newTokenVersion := uuid.New().String()
	if err := s.employeeRepo.UpdateTokenVersion(employee.ID, newTokenVersion); err != nil {
		return nil, errors.New("failed to update session")
	}
	if err := s.employeeRepo.UpdateLastSeen(employee.ID); err != nil {
		return nil, errors.New("failed to update session")
	}
	employee.TokenVersion = newTokenVersion

	// 5. Generate JWT token with the new version
	token, err := jwt.GenerateToken(employee.ID, employee.Email, employee.FullName, roleCode, employee.GetPrivilegeCodes(), newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:      token,
		Employee:   employee.ToResponse(),
		Role:       employee.Role,
		Privileges: employee.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		return ErrEmployeeNotFound
	}

	if !employee.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := employee.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	return s.employeeRepo.UpdatePassword(employee.ID, employee.Password)
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByID(claims.EmployeeID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	if !employee.IsActive {
		return nil, ErrEmployeeInactive
	}

	// Strict session check against the DB
	if employee.TokenVersion != claims.TokenVersion {
		return nil, errors.New("session expired (logged in on another device)")
	}

	return &TokenValidationResponse{
		Employee:   employee.ToResponse(),
		Role:       employee.Role,
		Privileges: employee.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) Heartbeat(employeeID uuid.UUID) error {
	return s.employeeRepo.UpdateLastSeen(employeeID)
}
