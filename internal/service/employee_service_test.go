package service

import (
	"testing"

	"go-boba-pos/internal/model"
	"go-boba-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEmployeeService(t *testing.T, db *gorm.DB) EmployeeService {
	t.Helper()
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	require.NoError(t, privilegeRepo.SeedDefaults())
	require.NoError(t, roleRepo.SeedDefaults())
	return NewEmployeeService(repository.NewEmployeeRepo(db), privilegeRepo, roleRepo, nil)
}

func cashierRoleID(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	roleRepo := repository.NewRoleRepo(db)
	role, err := roleRepo.FindByCode(model.RoleCashier)
	require.NoError(t, err)

	privileges, err := repository.NewPrivilegeRepo(db).FindByCodes(model.CashierPrivilegeCodes)
	require.NoError(t, err)
	require.NoError(t, db.Model(role).Association("Privileges").Replace(privileges))
	return role.ID
}

func TestCreateEmployeeAssignsRolePrivileges(t *testing.T) {
	db := newTestDB(t)
	svc := newEmployeeService(t, db)
	roleID := cashierRoleID(t, db)

	employee, err := svc.CreateEmployee(&CreateEmployeeRequest{
		Email:    "rin@example.com",
		Password: "secret123",
		FullName: "Rin",
		RoleID:   roleID,
	}, "mgr-1")
	require.NoError(t, err)

	codes := employee.GetPrivilegeCodes()
	assert.ElementsMatch(t, model.CashierPrivilegeCodes, codes)

	// Duplicate email is rejected
	_, err = svc.CreateEmployee(&CreateEmployeeRequest{
		Email:    "rin@example.com",
		Password: "secret123",
		FullName: "Rin Again",
		RoleID:   roleID,
	}, "mgr-1")
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestUpdateEmployeePrivilegesReplacesSet(t *testing.T) {
	db := newTestDB(t)
	svc := newEmployeeService(t, db)
	roleID := cashierRoleID(t, db)

	employee, err := svc.CreateEmployee(&CreateEmployeeRequest{
		Email:    "rin@example.com",
		Password: "secret123",
		FullName: "Rin",
		RoleID:   roleID,
	}, "mgr-1")
	require.NoError(t, err)

	updated, err := svc.UpdateEmployeePrivileges(employee.ID, []string{"order:create", "order:view"}, "mgr-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"order:create", "order:view"}, updated.GetPrivilegeCodes())
}

func TestUpdateEmployeeRoleChangeReseedsPrivileges(t *testing.T) {
	db := newTestDB(t)
	svc := newEmployeeService(t, db)
	roleID := cashierRoleID(t, db)

	roleRepo := repository.NewRoleRepo(db)
	managerRole, err := roleRepo.FindByCode(model.RoleManager)
	require.NoError(t, err)
	allPrivileges, err := repository.NewPrivilegeRepo(db).FindAll()
	require.NoError(t, err)
	require.NoError(t, db.Model(managerRole).Association("Privileges").Replace(allPrivileges))

	employee, err := svc.CreateEmployee(&CreateEmployeeRequest{
		Email:    "rin@example.com",
		Password: "secret123",
		FullName: "Rin",
		RoleID:   roleID,
	}, "mgr-1")
	require.NoError(t, err)

	promoted, err := svc.UpdateEmployee(employee.ID, &UpdateEmployeeRequest{
		Email:    "rin@example.com",
		FullName: "Rin",
		RoleID:   managerRole.ID,
	}, "mgr-1")
	require.NoError(t, err)
	assert.Len(t, promoted.GetPrivilegeCodes(), len(allPrivileges))
}
