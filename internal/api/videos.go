package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/models"
)

type videoCreateRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	URL       string `json:"url" validate:"required,max=512"`
	SortOrder int    `json:"order"`
	Active    *bool  `json:"active"`
}

// ListVideos handles GET /api/videos
func (h *Handlers) ListVideos(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", true)
	limit := c.QueryInt("limit", 10)
	switch {
	case limit > 100:
		limit = 100
	case limit < 1:
		limit = 10
	}

	videos, err := h.videos.ListVideos(c.Context(), activeOnly, limit)
	if err != nil {
		return err
	}
	return c.JSON(videos)
}

// GetVideo handles GET /api/videos/:id and counts the view.
func (h *Handlers) GetVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	video, err := h.videos.GetAndCountView(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(video)
}

// CreateVideo handles POST /api/videos (admin)
func (h *Handlers) CreateVideo(c *fiber.Ctx) error {
	var req videoCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	if err := h.validate.Struct(&req); err != nil {
		return err
	}

	video := models.Video{
		Title:     req.Title,
		URL:       req.URL,
		SortOrder: req.SortOrder,
		Active:    true,
	}
	if req.Active != nil {
		video.Active = *req.Active
	}

	if err := h.videos.Create(c.Context(), &video); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}

// UpdateVideo handles PUT /api/videos/:id (admin)
func (h *Handlers) UpdateVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	fields, err := partialFields(c.Body(), map[string]string{
		"title": "title", "url": "url", "order": "sort_order", "active": "active",
	})
	if err != nil {
		return err
	}

	video, err := h.videos.Update(c.Context(), id, fields)
	if err != nil {
		return err
	}
	return c.JSON(video)
}

// DeleteVideo handles DELETE /api/videos/:id (admin)
func (h *Handlers) DeleteVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.videos.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Video deleted"})
}

// ToggleVideo handles POST /api/videos/:id/toggle (admin)
func (h *Handlers) ToggleVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	video, err := h.videos.Toggle(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(video)
}
