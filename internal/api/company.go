package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/models"
)

// GetCompanyInfo handles GET /api/company
func (h *Handlers) GetCompanyInfo(c *fiber.Ctx) error {
	info, err := h.company.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(info)
}

// UpdateCompanyInfo handles PUT /api/company (admin). Creates the row on
// first write.
func (h *Handlers) UpdateCompanyInfo(c *fiber.Ctx) error {
	var seed models.CompanyInfo
	if err := c.BodyParser(&seed); err != nil {
		return errInvalidBody
	}

	fields, err := partialFields(c.Body(), map[string]string{
		"name": "name", "description_en": "description_en", "description_fa": "description_fa",
		"founded_year": "founded_year", "headquarters_location": "headquarters_location",
		"phone": "phone", "email": "email",
		"address_city": "address_city", "address_country": "address_country",
		"total_employees": "total_employees",
	})
	if err != nil {
		return err
	}

	info, err := h.company.Upsert(c.Context(), &seed, fields)
	if err != nil {
		return err
	}
	return c.JSON(info)
}

// GetStatistics handles GET /api/statistics
func (h *Handlers) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.statistics.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// UpdateStatistics handles PUT /api/statistics (admin)
func (h *Handlers) UpdateStatistics(c *fiber.Ctx) error {
	var seed models.Statistics
	if err := c.BodyParser(&seed); err != nil {
		return errInvalidBody
	}

	fields, err := partialFields(c.Body(), map[string]string{
		"annual_projects": "annual_projects", "service_types": "service_types",
		"employees": "employees", "satisfied_clients": "satisfied_clients",
	})
	if err != nil {
		return err
	}

	stats, err := h.statistics.Upsert(c.Context(), &seed, fields)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
