package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/models"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"required,min=5,max=20"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10"`
}

type contactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied archived"`
}

// SubmitContact handles POST /api/contact (public). Stores the submission
// with the caller's IP and user agent, then notifies the admin address in
// the background.
func (h *Handlers) SubmitContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	if err := h.validate.Struct(&req); err != nil {
		return err
	}

	submission := models.ContactSubmission{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Message:   req.Message,
		Status:    "new",
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
	if err := h.contact.Create(c.Context(), &submission); err != nil {
		return err
	}

	go h.mailer.NotifyContactSubmission(&submission)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Message received",
		"id":      submission.ID,
	})
}

// ListContactSubmissions handles GET /api/contact (admin)
func (h *Handlers) ListContactSubmissions(c *fiber.Ctx) error {
	submissions, err := h.contact.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(submissions)
}

// GetContactSubmission handles GET /api/contact/:id (admin)
func (h *Handlers) GetContactSubmission(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	submission, err := h.contact.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(submission)
}

// UpdateContactStatus handles PUT /api/contact/:id/status (admin)
func (h *Handlers) UpdateContactStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req contactStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	if err := h.validate.Struct(&req); err != nil {
		return apperr.Validation("Invalid status")
	}

	submission, err := h.contact.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(submission)
}

// DeleteContactSubmission handles DELETE /api/contact/:id (admin)
func (h *Handlers) DeleteContactSubmission(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.contact.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
