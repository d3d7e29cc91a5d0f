// internal/handler/templates.go
package handler

import (
	"embed"
	"html/template"
	"site-manager/internal/validator"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("2/1/2006") },
	"fieldClass": func(s validator.FieldState) string {
		switch s {
		case validator.Valid:
			return "field-valid"
		case validator.Invalid:
			return "field-invalid"
		default:
			return ""
		}
	},
}

// Templates parses the embedded pages; each page is looked up by file name.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html"))
}
