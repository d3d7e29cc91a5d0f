// internal/storage/restapi/restapi.go
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"site-manager/internal/domain"
	"site-manager/internal/storage"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failed response ends up in StatusError.
const maxErrorBody = 512

// StatusError is returned for any non-2xx answer from the API.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == storage.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Storage talks to the categories/sites REST API.
type Storage struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewStorage(baseURL string, timeout time.Duration) *Storage {
	return &Storage{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// === CategoryStorage ===

func (s *Storage) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *Storage) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	created := domain.Category{Name: name}
	if err := s.do(ctx, http.MethodPost, "/categories", map[string]string{"name": name}, &created); err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	slog.Debug("category created", "id", created.ID, "name", created.Name)
	return &created, nil
}

func (s *Storage) DeleteCategory(ctx context.Context, id domain.ID) error {
	if err := s.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id.String()), nil, nil); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	return nil
}

// === SiteStorage ===

func (s *Storage) ListSites(ctx context.Context) ([]domain.Site, error) {
	var sites []domain.Site
	if err := s.do(ctx, http.MethodGet, "/sites", nil, &sites); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	if sites == nil {
		sites = []domain.Site{}
	}
	return sites, nil
}

func (s *Storage) CreateSite(ctx context.Context, site domain.NewSite) (*domain.Site, error) {
	if site.CreatedAt.IsZero() {
		site.CreatedAt = domain.NewTimestamp(s.now())
	}
	created := domain.Site{
		Name:        site.Name,
		User:        site.User,
		Password:    site.Password,
		URL:         site.URL,
		Description: site.Description,
		CategoryID:  site.CategoryID,
		CreatedAt:   site.CreatedAt,
	}
	if err := s.do(ctx, http.MethodPost, "/sites", site, &created); err != nil {
		return nil, fmt.Errorf("create site %q: %w", site.Name, err)
	}
	slog.Debug("site created", "id", created.ID, "category_id", created.CategoryID)
	return &created, nil
}

func (s *Storage) DeleteSite(ctx context.Context, id domain.ID) error {
	if err := s.do(ctx, http.MethodDelete, "/sites/"+url.PathEscape(id.String()), nil, nil); err != nil {
		return fmt.Errorf("delete site %s: %w", id, err)
	}
	return nil
}

// do sends one JSON request. out is left untouched when the response has no body.
func (s *Storage) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("api call", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var _ interface {
	storage.CategoryStorage
	storage.SiteStorage
} = (*Storage)(nil)
