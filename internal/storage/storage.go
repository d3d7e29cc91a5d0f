// internal/storage/storage.go
package storage

import (
	"context"
	"errors"
	"site-manager/internal/domain"
)

var ErrNotFound = errors.New("not found")

type CategoryStorage interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id domain.ID) error
}

type SiteStorage interface {
	ListSites(ctx context.Context) ([]domain.Site, error)
	CreateSite(ctx context.Context, site domain.NewSite) (*domain.Site, error)
	DeleteSite(ctx context.Context, id domain.ID) error
}
