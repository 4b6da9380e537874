package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/auth"
	"github.com/geosite/cms/internal/middleware"
	"github.com/geosite/cms/internal/models"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login handles POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	if err := h.validate.Struct(&req); err != nil {
		return err
	}

	user, err := h.users.GetByUsername(c.Context(), req.Username)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.Unauthorized("Incorrect username or password")
		}
		return err
	}

	if !auth.CheckPassword(user.HashedPassword, req.Password) {
		return apperr.Unauthorized("Incorrect username or password")
	}
	if !user.IsActive {
		return apperr.Unauthorized("Account is inactive")
	}

	token, err := h.auth.IssueToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return apperr.Internal(err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         models.NewUserResponse(user),
	})
}

// Register handles POST /api/auth/register. New accounts are active
// non-admins; only the seeding path grants administrator status.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req registerRequest
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

// Me handles GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return apperr.Unauthorized("Not authenticated")
	}

	user, err := h.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.Unauthorized("Account no longer exists")
		}
		return err
	}
	return c.JSON(models.NewUserResponse(user))
}
