package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var creds map[string]string
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
				t.Fatalf("decode login body: %v", err)
			}
			if creds["username"] != "admin" || creds["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok123",
				"token_type":   "bearer",
			})
		case "/api/articles":
			if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
				t.Errorf("Authorization = %q, want Bearer tok123", got)
			}
			json.NewEncoder(w).Encode([]any{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	out, err := c.Login(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.AccessToken != "tok123" {
		t.Fatalf("AccessToken = %q", out.AccessToken)
	}

	if _, err := c.ListArticles(context.Background(), ListArticlesOptions{}); err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Article not found"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetArticle(context.Background(), "missing-slug")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Detail != "Article not found" {
		t.Fatalf("got %+v", apiErr)
	}
}

func TestListArticlesQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("skip") != "5" || q.Get("limit") != "20" || q.Get("tag") != "vpn" || q.Get("category") != "news" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListArticles(context.Background(), ListArticlesOptions{Skip: 5, Limit: 20, Tag: "vpn", Category: "news"})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
}

func TestCreateArticleOmitsNilFields(t *testing.T) {
	title := "Hello"
	slug := "hello"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, present := body["is_published"]; present {
			t.Error("nil is_published should be omitted")
		}
		if body["title_en"] != "Hello" {
			t.Errorf("title_en = %v", body["title_en"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "title_en": title, "slug": slug})
	}))
	defer srv.Close()

	c := New(srv.URL)
	out, err := c.CreateArticle(context.Background(), ArticleInput{TitleEN: &title, Slug: &slug})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if out.ID != 1 {
		t.Fatalf("ID = %d", out.ID)
	}
}
