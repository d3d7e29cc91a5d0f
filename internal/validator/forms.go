// internal/validator/forms.go
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldState is the outcome shown next to a form field.
type FieldState string

const (
	Neutral FieldState = ""
	Valid   FieldState = "valid"
	Invalid FieldState = "invalid"
)

// SiteFields are the required fields of the site form, in display order.
var SiteFields = []string{"name", "url", "user", "password"}

var fieldLabels = map[string]string{
	"name":     "Nombre",
	"url":      "URL",
	"user":     "Usuario",
	"password": "Contraseña",
}

type SiteForm struct {
	Name        string `form:"name" json:"name" validate:"required,notblank"`
	URL         string `form:"url" json:"url" validate:"required,notblank,httpurl"`
	User        string `form:"user" json:"user" validate:"required,notblank"`
	Password    string `form:"password" json:"password" validate:"required,notblank"`
	Description string `form:"description" json:"description"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f SiteForm) Trimmed() SiteForm {
	return SiteForm{
		Name:        strings.TrimSpace(f.Name),
		URL:         strings.TrimSpace(f.URL),
		User:        strings.TrimSpace(f.User),
		Password:    strings.TrimSpace(f.Password),
		Description: strings.TrimSpace(f.Description),
	}
}

type CategoryForm struct {
	Name string `form:"name" json:"name" validate:"required,notblank"`
}

// Result holds per-field states and messages for the fields that were checked.
type Result struct {
	Fields   map[string]FieldState `json:"fields"`
	Messages map[string]string     `json:"messages,omitempty"`
}

func (r Result) Valid() bool {
	for _, s := range r.Fields {
		if s == Invalid {
			return false
		}
	}
	return true
}

// State returns the state of one field, Neutral when it was not checked.
func (r Result) State(field string) FieldState {
	return r.Fields[field]
}

func (r Result) Message(field string) string {
	return r.Messages[field]
}

// CheckSite validates the given fields of the form; no fields means all
// required ones. Fields that are not checked stay Neutral.
func CheckSite(f SiteForm, fields ...string) Result {
	if len(fields) == 0 {
		fields = SiteFields
	}
	failed := fieldErrors(Validate.Struct(f))

	res := Result{Fields: map[string]FieldState{}, Messages: map[string]string{}}
	for _, name := range fields {
		if _, known := fieldLabels[name]; !known {
			continue
		}
		if e, ok := failed[name]; ok {
			res.Fields[name] = Invalid
			res.Messages[name] = fieldErrorToString(e)
			continue
		}
		res.Fields[name] = Valid
	}
	return res
}

// Struct validates v and joins every failure, in field order, into one
// readable error.
func Struct(v any) error {
	var verrs validator.ValidationErrors
	if !errors.As(Validate.Struct(v), &verrs) {
		return nil
	}
	errs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		errs = append(errs, fieldErrorToString(e))
	}
	return errors.New(strings.Join(errs, "; "))
}

func fieldErrors(err error) map[string]validator.FieldError {
	out := map[string]validator.FieldError{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}
	for _, e := range verrs {
		out[e.Field()] = e
	}
	return out
}

func fieldErrorToString(e validator.FieldError) string {
	label, ok := fieldLabels[e.Field()]
	if !ok {
		label = e.Field()
	}
	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s es obligatorio", label)
	case "httpurl":
		return fmt.Sprintf("%s debe empezar por http", label)
	default:
		return fmt.Sprintf("%s no es válido", label)
	}
}
