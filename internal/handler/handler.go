// internal/handler/handler.go
package handler

import (
	"net/http"
	"net/url"
	"site-manager/internal/confirm"
	"site-manager/internal/domain"
	"site-manager/internal/password"
	"site-manager/internal/storage"
	"time"

	"github.com/gin-gonic/gin"
)

type CombinedStorage interface {
	storage.CategoryStorage
	storage.SiteStorage
}

// SiteManagerHandler serves the category/site list view, the site creation
// view and their JSON counterparts.
type SiteManagerHandler struct {
	store     CombinedStorage
	tokens    *confirm.TokenService
	passwords *password.Generator
	now       func() time.Time
}

func NewSiteManagerHandler(store CombinedStorage, tokens *confirm.TokenService, passwords *password.Generator) *SiteManagerHandler {
	return &SiteManagerHandler{
		store:     store,
		tokens:    tokens,
		passwords: passwords,
		now:       time.Now,
	}
}

type notice struct {
	Text    string
	IsError bool
}

var notices = map[string]notice{
	"no-category":            {"No hay categoría seleccionada. Volviendo...", true},
	"select-category":        {"Selecciona una categoría primero", true},
	"confirm-expired":        {"La confirmación no es válida o ha caducado. Vuelve a intentarlo.", true},
	"invalid-id":             {"Identificador no válido.", true},
	"category-created":       {"Categoría añadida.", false},
	"category-deleted":       {"Categoría eliminada.", false},
	"category-delete-failed": {"Ocurrió un error de red al intentar eliminar la categoría.", true},
	"site-created":           {"Site guardado.", false},
	"site-deleted":           {"Site eliminado.", false},
	"site-delete-failed":     {"Ocurrió un error al intentar eliminar el site.", true},
}

// page carries what the shared layout needs.
type page struct {
	Title         string
	Notice        string
	NoticeIsError bool
}

func (p *page) setNotice(code string) {
	if n, ok := notices[code]; ok {
		p.Notice = n.Text
		p.NoticeIsError = n.IsError
	}
}

func (p *page) setError(text string) {
	p.Notice = text
	p.NoticeIsError = true
}

// indexURL builds "/?..." keeping only non-empty parameters.
func indexURL(params ...string) string {
	return pathWithQuery("/", params...)
}

func pathWithQuery(path string, params ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(params); i += 2 {
		if params[i+1] != "" {
			q.Set(params[i], params[i+1])
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func redirect(c *gin.Context, target string) {
	c.Redirect(http.StatusSeeOther, target)
}

func idParam(raw string) (domain.ID, bool) {
	id, err := domain.ParseID(raw)
	return id, err == nil
}
