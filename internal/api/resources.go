package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/models"
	"github.com/geosite/cms/internal/store"
)

// The simple resources (services, team, certificates, licenses, projects)
// all share the same handler shape: public list/detail, admin
// create/update/delete. registerCRUD wires one resource's routes.
//
// Partial updates accept any subset of the resource's JSON fields; the
// allowed map translates JSON names to columns so unknown fields are
// silently dropped rather than reaching the store. A non-nil list handler
// replaces the default unfiltered listing.
func registerCRUD[T any](
	router fiber.Router,
	admin fiber.Handler,
	s *store.CRUDStore[T],
	allowed map[string]string,
	checkCreate func(*T) error,
	list fiber.Handler,
) {
	if list == nil {
		list = func(c *fiber.Ctx) error {
			records, err := s.List(c.Context())
			if err != nil {
				return err
			}
			return c.JSON(records)
		}
	}
	router.Get("", list)

	router.Get("/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		record, err := s.Get(c.Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(record)
	})

	router.Post("", admin, func(c *fiber.Ctx) error {
		var record T
		if err := c.BodyParser(&record); err != nil {
			return errInvalidBody
		}
		if err := checkCreate(&record); err != nil {
			return err
		}
		if err := s.Create(c.Context(), &record); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	})

	router.Put("/:id", admin, func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		fields, err := partialFields(c.Body(), allowed)
		if err != nil {
			return err
		}
		record, err := s.Update(c.Context(), id, fields)
		if err != nil {
			return err
		}
		return c.JSON(record)
	})

	router.Delete("/:id", admin, func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		if err := s.Delete(c.Context(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// partialFields decodes a JSON body into column/value pairs, keeping only
// fields named in allowed.
func partialFields(body []byte, allowed map[string]string) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errInvalidBody
	}

	fields := make(map[string]interface{}, len(raw))
	for name, value := range raw {
		if column, ok := allowed[name]; ok {
			fields[column] = value
		}
	}
	return fields, nil
}

func requireField(value, message string) error {
	if value == "" {
		return apperr.Validation("%s", message)
	}
	return nil
}

// RegisterResourceRoutes wires the shared-shape resources under api.
func (h *Handlers) RegisterResourceRoutes(api fiber.Router, admin fiber.Handler) {
	registerCRUD(api.Group("/services"), admin, h.services,
		map[string]string{
			"title": "title", "description": "description", "category": "category",
			"image_url": "image_url", "software_tools": "software_tools",
		},
		func(s *models.Service) error {
			return requireField(s.Title, "Title is required")
		}, nil)

	registerCRUD(api.Group("/team"), admin, h.team,
		map[string]string{
			"name_en": "name_en", "name_fa": "name_fa",
			"position_en": "position_en", "position_fa": "position_fa",
			"email": "email", "phone": "phone", "image_url": "image_url",
			"bio_en": "bio_en", "bio_fa": "bio_fa",
		},
		func(m *models.TeamMember) error {
			return requireField(m.NameEN, "Name is required")
		}, nil)

	registerCRUD(api.Group("/certificates"), admin, h.certificates,
		map[string]string{
			"title_en": "title_en", "title_fa": "title_fa", "image_url": "image_url",
			"description_en": "description_en", "description_fa": "description_fa",
			"issue_date": "issue_date", "expiry_date": "expiry_date",
		},
		func(cert *models.Certificate) error {
			return requireField(cert.TitleEN, "Title is required")
		}, nil)

	registerCRUD(api.Group("/licenses"), admin, h.licenses,
		map[string]string{
			"title_en": "title_en", "title_fa": "title_fa", "image_url": "image_url",
			"description_en": "description_en", "description_fa": "description_fa",
			"issue_date": "issue_date", "issue_authority": "issue_authority",
		},
		func(l *models.License) error {
			return requireField(l.TitleEN, "Title is required")
		}, nil)

	registerCRUD(api.Group("/projects"), admin, h.projects,
		map[string]string{
			"title_en": "title_en", "title_fa": "title_fa",
			"description_en": "description_en", "description_fa": "description_fa",
			"image_url": "image_url", "archive_url": "archive_url", "iframe_url": "iframe_url",
			"category": "category", "order": "sort_order", "is_featured": "is_featured",
		},
		func(p *models.Project) error {
			return requireField(p.TitleEN, "Title is required")
		},
		func(c *fiber.Ctx) error {
			if c.QueryBool("featured_only", false) {
				projects, err := h.projects.ListWhere(c.Context(), "is_featured = ?", true)
				if err != nil {
					return err
				}
				return c.JSON(projects)
			}
			projects, err := h.projects.List(c.Context())
			if err != nil {
				return err
			}
			return c.JSON(projects)
		})
}
