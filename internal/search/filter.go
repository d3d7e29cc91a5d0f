// internal/search/filter.go
package search

import (
	"site-manager/internal/domain"
	"strings"

	"golang.org/x/text/cases"
)

// Contains reports whether s contains term, ignoring case.
// The empty term matches everything.
func Contains(s, term string) bool {
	if term == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(term))
}

// Categories keeps the categories whose name contains term.
func Categories(categories []domain.Category, term string) []domain.Category {
	out := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if Contains(c.Name, term) {
			out = append(out, c)
		}
	}
	return out
}

func SitesInCategory(sites []domain.Site, categoryID domain.ID) []domain.Site {
	out := make([]domain.Site, 0)
	for _, s := range sites {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out
}

// Sites keeps the sites of one category whose name or user contains term.
func Sites(sites []domain.Site, categoryID domain.ID, term string) []domain.Site {
	out := make([]domain.Site, 0)
	for _, s := range SitesInCategory(sites, categoryID) {
		if Contains(s.Name, term) || Contains(s.User, term) {
			out = append(out, s)
		}
	}
	return out
}
