package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/repository"
	"go-boba-pos/internal/ws"
	"go-boba-pos/pkg/validator"

	"github.com/google/uuid"
)

var ErrEmailExists = errors.New("email already exists")

type EmployeeService interface {
	CreateEmployee(req *CreateEmployeeRequest, creatorID string) (*model.Employee, error)
	UpdateEmployee(employeeID uuid.UUID, req *UpdateEmployeeRequest, updaterID string) (*model.Employee, error)
	DeleteEmployee(employeeID uuid.UUID) error
	UpdateEmployeePrivileges(employeeID uuid.UUID, privilegeCodes []string, updaterID string) (*model.Employee, error)
	GetAllEmployees() ([]model.EmployeeResponse, error)
	GetEmployeeByID(id uuid.UUID) (*model.EmployeeResponse, error)
}

type CreateEmployeeRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	RoleID      uint   `json:"role_id" validate:"required"`
}

type UpdateEmployeeRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number"`
	RoleID      uint    `json:"role_id" validate:"required"`
	IsActive    *bool   `json:"is_active"`
}

type employeeService struct {
	employeeRepo  repository.EmployeeRepository
	privilegeRepo repository.PrivilegeRepository
	roleRepo      repository.RoleRepository
	wsHub         *ws.Hub
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository, hub *ws.Hub) EmployeeService {
	return &employeeService{
		employeeRepo:  employeeRepo,
		privilegeRepo: privilegeRepo,
		roleRepo:      roleRepo,
		wsHub:         hub,
	}
}

func (s *employeeService) CreateEmployee(req *CreateEmployeeRequest, creatorID string) (*model.Employee, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Check if email already exists
	existing, _ := s.employeeRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	// 3. Validate role exists
	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		return nil, errors.New("role not found")
	}

	// 4. Create employee
	employee := &model.Employee{
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		RoleID:      &req.RoleID,
		IsActive:    true,
	}
	employee.CreatedBy = creatorID
	employee.UpdatedBy = creatorID

	if err := employee.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	// 5. Auto-assign privileges based on role
	employee.Privileges = role.Privileges

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, err
	}

	return employee, nil
}

func (s *employeeService) UpdateEmployee(employeeID uuid.UUID, req *UpdateEmployeeRequest, updaterID string) (*model.Employee, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	// Guard against stealing another employee's email
	if employee.Email != req.Email {
		if existing, _ := s.employeeRepo.FindByEmail(req.Email); existing != nil {
			return nil, ErrEmailExists
		}
	}

	roleChanged := employee.RoleID == nil || *employee.RoleID != req.RoleID
	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		return nil, errors.New("role not found")
	}

	employee.Email = req.Email
	employee.FullName = req.FullName
	employee.PhoneNumber = req.PhoneNumber
	employee.RoleID = &req.RoleID
	employee.UpdatedBy = updaterID
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if err := employee.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, err
	}

	// Re-seed privileges when the role changes
	if roleChanged {
		if err := s.employeeRepo.UpdatePrivileges(employeeID, role.Privileges); err != nil {
			return nil, err
		}
		go s.notifySessionRefresh(employeeID, "role changed")
	}

	return s.employeeRepo.FindByID(employeeID)
}

func (s *employeeService) DeleteEmployee(employeeID uuid.UUID) error {
	if _, err := s.employeeRepo.FindByID(employeeID); err != nil {
		return ErrEmployeeNotFound
	}
	return s.employeeRepo.Delete(employeeID)
}

func (s *employeeService) UpdateEmployeePrivileges(employeeID uuid.UUID, privilegeCodes []string, updaterID string) (*model.Employee, error) {
	if _, err := s.employeeRepo.FindByID(employeeID); err != nil {
		return nil, ErrEmployeeNotFound
	}

	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, err
	}

	if err := s.employeeRepo.UpdatePrivileges(employeeID, privileges); err != nil {
		return nil, err
	}
	go s.notifySessionRefresh(employeeID, "privileges changed")

	return s.employeeRepo.FindByID(employeeID)
}

// notifySessionRefresh tells the affected employee's open connections to
// re-fetch their session. Sent only to that employee, not broadcast.
func (s *employeeService) notifySessionRefresh(employeeID uuid.UUID, reason string) {
	if s.wsHub == nil {
		return
	}
	msg, _ := json.Marshal(map[string]interface{}{
		"type":    "session_refresh",
		"reason":  reason,
		"message": "Your access level changed, please refresh",
	})
	s.wsHub.SendToUsers([]string{employeeID.String()}, msg)
}

func (s *employeeService) GetAllEmployees() ([]model.EmployeeResponse, error) {
	employees, err := s.employeeRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.EmployeeResponse, len(employees))
	for i, employee := range employees {
		responses[i] = employee.ToResponse()
	}
	return responses, nil
}

func (s *employeeService) GetEmployeeByID(id uuid.UUID) (*model.EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	response := employee.ToResponse()
	return &response, nil
}
