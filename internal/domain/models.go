// internal/domain/models.go
package domain

import "time"

type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Site is a stored credential record belonging to one category.
type Site struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	User        string    `json:"user"`
	Password    string    `json:"password"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	CategoryID  ID        `json:"categoryId"`
	CreatedAt   Timestamp `json:"createdAt,omitzero"`
}

// CreatedOn returns the creation time, or now when the API did not record one.
func (s Site) CreatedOn(now time.Time) time.Time {
	if s.CreatedAt.IsZero() {
		return now
	}
	return s.CreatedAt.Time
}

// NewSite is the payload for POST /sites.
type NewSite struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	User        string    `json:"user"`
	Password    string    `json:"password"`
	Description string    `json:"description"`
	CategoryID  ID        `json:"categoryId"`
	CreatedAt   Timestamp `json:"createdAt,omitzero"`
}
