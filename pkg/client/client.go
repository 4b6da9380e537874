// Package client is a typed Go client for the CMS HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/geosite/cms/internal/models"
)

// APIError is a non-2xx response decoded from the API's error body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// Client talks to a CMS backend. Safe for concurrent use once configured.
type Client struct {
	http *resty.Client
}

// New returns a client for the API served at baseURL.
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(time.Second),
	}
}

// SetToken sets the bearer token used for admin operations.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// LoginResponse is the payload returned by Login.
type LoginResponse struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type"`
	User        models.UserResponse `json:"user"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/api/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	c.SetToken(out.AccessToken)
	return &out, nil
}

// ListArticlesOptions filters and paginates ListArticles.
type ListArticlesOptions struct {
	Skip     int
	Limit    int
	Tag      string
	Category string
}

func (c *Client) ListArticles(ctx context.Context, opts ListArticlesOptions) ([]models.ArticleResponse, error) {
	req := c.http.R().SetContext(ctx)
	req.SetQueryParam("skip", strconv.Itoa(opts.Skip))
	if opts.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Tag != "" {
		req.SetQueryParam("tag", opts.Tag)
	}
	if opts.Category != "" {
		req.SetQueryParam("category", opts.Category)
	}

	var out []models.ArticleResponse
	resp, err := req.SetResult(&out).Get("/api/articles")
	if err != nil {
		return nil, fmt.Errorf("list articles failed: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return out, nil
}

// GetArticle fetches an article by numeric id or slug.
func (c *Client) GetArticle(ctx context.Context, idOrSlug string) (*models.ArticleResponse, error) {
	var out models.ArticleResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/articles/" + idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("get article failed: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

// ArticleInput is the write shape for creating or updating an article.
// Nil fields are omitted from updates.
type ArticleInput struct {
	TitleEN     *string `json:"title_en,omitempty"`
	TitleFA     *string `json:"title_fa,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	SummaryEN   *string `json:"summary_en,omitempty"`
	SummaryFA   *string `json:"summary_fa,omitempty"`
	ContentEN   *string `json:"content_en,omitempty"`
	ContentFA   *string `json:"content_fa,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Tags        *string `json:"tags,omitempty"`
	Category    *string `json:"category,omitempty"`
	Author      *string `json:"author,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
}

func (c *Client) CreateArticle(ctx context.Context, input ArticleInput) (*models.ArticleResponse, error) {
	var out models.ArticleResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&out).
		Post("/api/articles")
	if err != nil {
		return nil, fmt.Errorf("create article failed: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id uint, input ArticleInput) (*models.ArticleResponse, error) {
	var out models.ArticleResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&out).
		Put(fmt.Sprintf("/api/articles/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update article failed: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id uint) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/articles/%d", id))
	if err != nil {
		return fmt.Errorf("delete article failed: %w", err)
	}
	return checkStatus(resp)
}

// Health reports the server's health payload.
func (c *Client) Health(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return out, nil
}

func checkStatus(resp *resty.Response) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), Detail: http.StatusText(resp.StatusCode())}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
	}
	return apiErr
}
