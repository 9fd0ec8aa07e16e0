package handler

import (
	"errors"

	"go-boba-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EmployeeHandler struct {
	service service.EmployeeService
}

func NewEmployeeHandler(s service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: s}
}

func (h *EmployeeHandler) GetEmployees(c *fiber.Ctx) error {
	employees, err := h.service.GetAllEmployees()
	if err != nil {
		return respondError(c, 500, err)
	}
	return respondOK(c, employees, "")
}

func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid employee ID")
	}

	employee, err := h.service.GetEmployeeByID(id)
	if err != nil {
		return respondError(c, 404, err)
	}
	return respondOK(c, employee, "")
}

func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req service.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	employee, err := h.service.CreateEmployee(&req, getEmployeeID(c))
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return respondError(c, 409, err)
		}
		return respondError(c, 400, err)
	}
	return respondCreated(c, employee.ToResponse(), "Employee created")
}

func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid employee ID")
	}

	var req service.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	employee, err := h.service.UpdateEmployee(id, &req, getEmployeeID(c))
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			return respondError(c, 404, err)
		}
		if errors.Is(err, service.ErrEmailExists) {
			return respondError(c, 409, err)
		}
		return respondError(c, 400, err)
	}
	return respondOK(c, employee.ToResponse(), "Employee updated")
}

func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid employee ID")
	}

	if err := h.service.DeleteEmployee(id); err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			return respondError(c, 404, err)
		}
		return respondError(c, 500, err)
	}
	return respondOK(c, nil, "Employee deleted")
}

type updatePrivilegesRequest struct {
	Privileges []string `json:"privileges"`
}

func (h *EmployeeHandler) UpdateEmployeePrivileges(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid employee ID")
	}

	var req updatePrivilegesRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	employee, err := h.service.UpdateEmployeePrivileges(id, req.Privileges, getEmployeeID(c))
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			return respondError(c, 404, err)
		}
		return respondError(c, 500, err)
	}
	return respondOK(c, employee.ToResponse(), "Privileges updated")
}
