package handler

import (
	"errors"

	"go-boba-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	resp, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrEmployeeInactive) {
			return respondError(c, 401, err)
		}
		return respondError(c, 500, err)
	}
	return respondOK(c, resp, "Login successful")
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	if err := h.service.ResetPassword(req.Email, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			return respondError(c, 401, err)
		}
		if errors.Is(err, service.ErrEmployeeNotFound) {
			return respondError(c, 404, err)
		}
		return respondError(c, 500, err)
	}
	return respondOK(c, nil, "Password updated")
}

type validateTokenRequest struct {
	Token string `json:"token"`
}

func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req validateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErrorMsg(c, 400, "Invalid JSON")
	}

	resp, err := h.service.ValidateToken(req.Token)
	if err != nil {
		return respondError(c, 401, err)
	}
	return respondOK(c, resp, "")
}

func (h *AuthHandler) Heartbeat(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(getEmployeeID(c))
	if err != nil {
		return respondErrorMsg(c, 400, "Invalid employee ID")
	}

	if err := h.service.Heartbeat(employeeID); err != nil {
		return respondError(c, 500, err)
	}
	return respondOK(c, nil, "")
}
