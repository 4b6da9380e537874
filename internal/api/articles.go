package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/models"
	"github.com/geosite/cms/internal/store"
)

// articlesCachePrefix namespaces cached article payloads. The read path is
// reachable by id or slug, so mutations drop the whole namespace instead of
// trying to pinpoint affected keys.
const articlesCachePrefix = "articles:"

type articleCreateRequest struct {
	TitleEN     string `json:"title_en" validate:"required,max=255"`
	TitleFA     string `json:"title_fa"`
	Slug        string `json:"slug" validate:"required,max=255"`
	SummaryEN   string `json:"summary_en" validate:"required"`
	SummaryFA   string `json:"summary_fa"`
	ContentEN   string `json:"content_en" validate:"required"`
	ContentFA   string `json:"content_fa"`
	ImageURL    string `json:"image_url"`
	Tags        string `json:"tags"`
	Category    string `json:"category"`
	Author      string `json:"author"`
	IsPublished bool   `json:"is_published"`
}

type articleUpdateRequest struct {
	TitleEN     *string `json:"title_en"`
	TitleFA     *string `json:"title_fa"`
	Slug        *string `json:"slug"`
	SummaryEN   *string `json:"summary_en"`
	SummaryFA   *string `json:"summary_fa"`
	ContentEN   *string `json:"content_en"`
	ContentFA   *string `json:"content_fa"`
	ImageURL    *string `json:"image_url"`
	Tags        *string `json:"tags"`
	Category    *string `json:"category"`
	Author      *string `json:"author"`
	IsPublished *bool   `json:"is_published"`
}

// ListArticles handles GET /api/articles
func (h *Handlers) ListArticles(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}
	limit := c.QueryInt("limit", 10)
	switch {
	case limit > 100:
		limit = 100
	case limit < 1:
		limit = 10
	}

	articles, err := h.articles.List(c.Context(), skip, limit, c.Query("tag"), c.Query("category"))
	if err != nil {
		return err
	}

	responses := make([]models.ArticleResponse, 0, len(articles))
	for i := range articles {
		responses = append(responses, models.NewArticleResponse(&articles[i]))
	}
	return c.JSON(responses)
}

// GetArticle handles GET /api/articles/:idOrSlug with a read-through cache.
// On a hit the cached payload is returned verbatim; on a miss the store is
// consulted (id first for numeric tokens, then slug) and the serialized
// response is cached for the configured articles TTL.
func (h *Handlers) GetArticle(c *fiber.Ctx) error {
	token := c.Params("idOrSlug")
	cacheKey := articlesCachePrefix + token

	if payload, ok := h.cache.Get(c.Context(), cacheKey); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}

	article, err := h.articles.GetByIDOrSlug(c.Context(), token)
	if err != nil {
		return err
	}

	response := models.NewArticleResponse(article)
	payload, err := json.Marshal(response)
	if err == nil {
		h.cache.Set(c.Context(), cacheKey, payload, h.config.ArticlesCacheTTL)
	}

	return c.JSON(response)
}

// CreateArticle handles POST /api/articles (admin)
func (h *Handlers) CreateArticle(c *fiber.Ctx) error {
	var req articleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	if err := h.validate.Struct(&req); err != nil {
		return err
	}

	article := models.Article{
		TitleEN:     req.TitleEN,
		TitleFA:     req.TitleFA,
		Slug:        req.Slug,
		SummaryEN:   req.SummaryEN,
		SummaryFA:   req.SummaryFA,
		ContentEN:   req.ContentEN,
		ContentFA:   req.ContentFA,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		Category:    req.Category,
		Author:      req.Author,
		IsPublished: req.IsPublished,
	}

	if err := h.articles.Create(c.Context(), &article); err != nil {
		return err
	}

	h.cache.InvalidatePattern(c.Context(), articlesCachePrefix)
	return c.Status(fiber.StatusCreated).JSON(models.NewArticleResponse(&article))
}

// UpdateArticle handles PUT /api/articles/:id (admin)
func (h *Handlers) UpdateArticle(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req articleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	article, err := h.articles.Update(c.Context(), id, store.ArticleUpdate{
		TitleEN:     req.TitleEN,
		TitleFA:     req.TitleFA,
		Slug:        req.Slug,
		SummaryEN:   req.SummaryEN,
		SummaryFA:   req.SummaryFA,
		ContentEN:   req.ContentEN,
		ContentFA:   req.ContentFA,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		Category:    req.Category,
		Author:      req.Author,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return err
	}

	h.cache.InvalidatePattern(c.Context(), articlesCachePrefix)
	return c.JSON(models.NewArticleResponse(article))
}

// DeleteArticle handles DELETE /api/articles/:id (admin)
func (h *Handlers) DeleteArticle(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.articles.Delete(c.Context(), id); err != nil {
		return err
	}

	h.cache.InvalidatePattern(c.Context(), articlesCachePrefix)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetAllTags handles GET /api/articles/tags/all
func (h *Handlers) GetAllTags(c *fiber.Ctx) error {
	tags, err := h.articles.DistinctTags(c.Context())
	if err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(tags)
}
