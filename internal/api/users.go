package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/auth"
	"github.com/geosite/cms/internal/models"
	"github.com/geosite/cms/internal/store"
)

type userCreateRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type userUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	IsAdmin  *bool   `json:"is_admin"`
	IsActive *bool   `json:"is_active"`
}

// ListUsers handles GET /api/users (admin)
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, models.NewUserResponse(&users[i]))
	}
	return c.JSON(responses)
}

// CreateUser handles POST /api/users (admin). Created accounts default to
// non-admin; an admin can grant the flag afterwards through update.
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var req userCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	if err := h.validate.Struct(&req); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperr.Internal(err)
	}

	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hash,
		IsAdmin:        false,
		IsActive:       true,
	}
	if err := h.users.Create(c.Context(), &user); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewUserResponse(&user))
}

// UpdateUser handles PUT /api/users/:id (admin)
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req userUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	user, err := h.users.Update(c.Context(), id, store.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(models.NewUserResponse(user))
}

// DeleteUser handles DELETE /api/users/:id (admin)
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
