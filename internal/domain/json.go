// internal/domain/json.go
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidID = errors.New("invalid id")

// ID identifies a category or a site. The API sends ids either as JSON
// numbers or as strings; the number 7 and the string "7" decode to the same
// value, any other string is kept as sent.
type ID string

// ParseID reads an id from a URL parameter. Empty and "0" are rejected.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return "", ErrInvalidID
	}
	return ID(s), nil
}

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return id == "" }

// numberID canonicalises a JSON number id without a float round-trip.
func numberID(n json.Number) ID {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return ID(strconv.FormatInt(i, 10))
	}
	return ID(n.String())
}

// isCanonicalInt reports whether s is exactly the decimal form of an int64.
func isCanonicalInt(s string) bool {
	i, err := strconv.ParseInt(s, 10, 64)
	return err == nil && strconv.FormatInt(i, 10) == s
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if isCanonicalInt(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = numberID(n)
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp accepts the createdAt shapes seen from the API: ISO strings,
// "YYYY-MM-DD HH:MM:SS" strings and epoch milliseconds. Anything else
// decodes to the zero value.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = Timestamp{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = parsed
				return nil
			}
		}
		return nil
	}
	if ms, err := strconv.ParseFloat(string(b), 64); err == nil {
		t.Time = time.UnixMilli(int64(ms))
	}
	return nil
}
