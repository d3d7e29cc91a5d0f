package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"site-manager/internal/domain"
	"site-manager/internal/storage"
	"testing"
	"time"
)

type recordedRequest struct {
	method      string
	path        string
	contentType string
	body        string
}

func newTestServer(t *testing.T, status int, response string, seen *recordedRequest) *Storage {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if seen != nil {
			*seen = recordedRequest{
				method:      r.Method,
				path:        r.URL.Path,
				contentType: r.Header.Get("Content-Type"),
				body:        string(body),
			}
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return NewStorage(srv.URL+"/", 2*time.Second)
}

func TestListCategories(t *testing.T) {
	var seen recordedRequest
	s := newTestServer(t, http.StatusOK, `[{"id":1,"name":"Trabajo"},{"id":"2","name":"Casa"}]`, &seen)

	categories, err := s.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen.method != http.MethodGet || seen.path != "/categories" {
		t.Fatalf("unexpected request %s %s", seen.method, seen.path)
	}
	if len(categories) != 2 || categories[0].ID != "1" || categories[1].ID != "2" {
		t.Fatalf("unexpected categories: %+v", categories)
	}
}

func TestListCategories_EmptyBodyGivesEmptySlice(t *testing.T) {
	s := newTestServer(t, http.StatusOK, ``, nil)
	categories, err := s.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if categories == nil || len(categories) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", categories)
	}
}

func TestCreateCategory_SendsName(t *testing.T) {
	var seen recordedRequest
	s := newTestServer(t, http.StatusCreated, `{"id":9,"name":"Bancos"}`, &seen)

	created, err := s.CreateCategory(context.Background(), "Bancos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen.method != http.MethodPost || seen.path != "/categories" {
		t.Fatalf("unexpected request %s %s", seen.method, seen.path)
	}
	if seen.contentType != "application/json" {
		t.Fatalf("expected json content type, got %q", seen.contentType)
	}
	if seen.body != `{"name":"Bancos"}` {
		t.Fatalf("unexpected body %s", seen.body)
	}
	if created.ID != "9" {
		t.Fatalf("expected id 9, got %q", created.ID)
	}
}

func TestCreateSite_StampsCreatedAt(t *testing.T) {
	var seen recordedRequest
	s := newTestServer(t, http.StatusCreated, `{"id":3}`, &seen)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	created, err := s.CreateSite(context.Background(), domain.NewSite{
		Name:       "GitHub",
		URL:        "https://github.com",
		User:       "me",
		Password:   "Secret1!",
		CategoryID: "4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(seen.body), &payload); err != nil {
		t.Fatalf("request body is not json: %v", err)
	}
	if payload["categoryId"] != float64(4) {
		t.Fatalf("expected numeric categoryId, got %#v", payload["categoryId"])
	}
	if payload["createdAt"] != "2025-06-01T12:00:00Z" {
		t.Fatalf("unexpected createdAt %#v", payload["createdAt"])
	}
	if created.ID != "3" || created.Name != "GitHub" {
		t.Fatalf("unexpected created site %+v", created)
	}
}

func TestDeleteSite_NotFound(t *testing.T) {
	var seen recordedRequest
	s := newTestServer(t, http.StatusNotFound, `{"error":"missing"}`, &seen)

	err := s.DeleteSite(context.Background(), "17")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Body != `{"error":"missing"}` {
		t.Fatalf("expected StatusError with body, got %v", err)
	}
	if seen.method != http.MethodDelete || seen.path != "/sites/17" {
		t.Fatalf("unexpected request %s %s", seen.method, seen.path)
	}
}

func TestListSites_ServerError(t *testing.T) {
	s := newTestServer(t, http.StatusInternalServerError, `boom`, nil)
	_, err := s.ListSites(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("500 must not match ErrNotFound")
	}
}

func TestListSites_CancelledContext(t *testing.T) {
	s := newTestServer(t, http.StatusOK, `[]`, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.ListSites(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestListSites_StringIDsRoundTrip(t *testing.T) {
	s := newTestServer(t, http.StatusOK, `[{"id":"1e03","categoryId":"0e12"},{"id":"0042","categoryId":"1e03"}]`, nil)
	sites, err := s.ListSites(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sites) != 2 || sites[0].ID != "1e03" || sites[0].CategoryID != "0e12" || sites[1].ID != "0042" {
		t.Fatalf("ids were rewritten: %+v", sites)
	}

	var seen recordedRequest
	del := newTestServer(t, http.StatusOK, `{}`, &seen)
	for _, site := range sites {
		if err := del.DeleteSite(context.Background(), site.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen.path != "/sites/"+site.ID.String() {
			t.Fatalf("expected DELETE /sites/%s, got %s", site.ID, seen.path)
		}
	}
}
