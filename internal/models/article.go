package models

import (
	"strings"
	"time"
)

// Article is a bilingual news/blog entry. The slug is globally unique and
// public reads only ever see published rows.
type Article struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	TitleEN     string    `gorm:"size:255;not null" json:"title_en"`
	TitleFA     string    `gorm:"size:255" json:"title_fa"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	SummaryEN   string    `gorm:"type:text" json:"summary_en"`
	SummaryFA   string    `gorm:"type:text" json:"summary_fa"`
	ContentEN   string    `gorm:"type:text" json:"content_en"`
	ContentFA   string    `gorm:"type:text" json:"content_fa"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	Tags        string    `gorm:"size:512" json:"tags"` // comma-separated
	Category    string    `gorm:"size:100" json:"category"`
	Author      string    `gorm:"size:255" json:"author"`
	IsPublished bool      `json:"is_published"`
	PublishDate time.Time `json:"publish_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TagList splits the comma-separated tags field into trimmed tags,
// skipping empty entries.
func (a *Article) TagList() []string {
	if a.Tags == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(a.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ArticleResponse is the immutable response shape for an article. Handlers
// build it at the boundary rather than serializing live store rows, so a
// cached payload can never be mutated after the fact.
type ArticleResponse struct {
	ID          uint      `json:"id"`
	TitleEN     string    `json:"title_en"`
	TitleFA     string    `json:"title_fa"`
	Slug        string    `json:"slug"`
	SummaryEN   string    `json:"summary_en"`
	SummaryFA   string    `json:"summary_fa"`
	ContentEN   string    `json:"content_en"`
	ContentFA   string    `json:"content_fa"`
	ImageURL    string    `json:"image_url"`
	Tags        string    `json:"tags"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	IsPublished bool      `json:"is_published"`
	PublishDate time.Time `json:"publish_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewArticleResponse copies an article row into its response shape.
func NewArticleResponse(a *Article) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID,
		TitleEN:     a.TitleEN,
		TitleFA:     a.TitleFA,
		Slug:        a.Slug,
		SummaryEN:   a.SummaryEN,
		SummaryFA:   a.SummaryFA,
		ContentEN:   a.ContentEN,
		ContentFA:   a.ContentFA,
		ImageURL:    a.ImageURL,
		Tags:        a.Tags,
		Category:    a.Category,
		Author:      a.Author,
		IsPublished: a.IsPublished,
		PublishDate: a.PublishDate,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
