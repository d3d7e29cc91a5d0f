// internal/handler/site_form.go
package handler

import (
	"log/slog"
	"net/http"
	"site-manager/internal/domain"
	"site-manager/internal/validator"

	"github.com/gin-gonic/gin"
)

const (
	actionGenerate = "generate"
	actionToggle   = "toggle"
	actionSave     = "save"
)

type siteFormPage struct {
	page
	CategoryID   domain.ID
	Form         validator.SiteForm
	Result       validator.Result
	ShowPassword bool
	CancelURL    string
}

// AddSite is the target of the "Añadir site" button.
func (h *SiteManagerHandler) AddSite(c *gin.Context) {
	id, ok := idParam(c.Query("categoryId"))
	if !ok {
		redirect(c, indexURL("notice", "select-category"))
		return
	}
	redirect(c, pathWithQuery("/site/new", "categoryId", id.String()))
}

// NewSite renders an empty site creation form.
func (h *SiteManagerHandler) NewSite(c *gin.Context) {
	id, ok := idParam(c.Query("categoryId"))
	if !ok {
		slog.Warn("Site form without category", "category_id", c.Query("categoryId"))
		redirect(c, indexURL("notice", "no-category"))
		return
	}
	h.renderSiteForm(c, http.StatusOK, siteFormPage{CategoryID: id})
}

// SubmitSite handles the three buttons of the site form: generate, toggle and save.
func (h *SiteManagerHandler) SubmitSite(c *gin.Context) {
	id, ok := idParam(c.PostForm("categoryId"))
	if !ok {
		redirect(c, indexURL("notice", "no-category"))
		return
	}

	var form validator.SiteForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Debug("SubmitSite bind failed", "error", err, "category_id", id)
	}

	data := siteFormPage{
		CategoryID:   id,
		Form:         form,
		ShowPassword: c.PostForm("show_password") == "1",
	}

	switch c.PostForm("action") {
	case actionGenerate:
		generated, err := h.passwords.Generate()
		if err != nil {
			slog.Error("Password generation failed", "error", err)
			data.setError("No se pudo generar la contraseña")
			h.renderSiteForm(c, http.StatusInternalServerError, data)
			return
		}
		data.Form.Password = generated
		data.Result = validator.CheckSite(data.Form, "password")
		h.renderSiteForm(c, http.StatusOK, data)

	case actionToggle:
		data.ShowPassword = !data.ShowPassword
		h.renderSiteForm(c, http.StatusOK, data)

	default:
		h.saveSite(c, data)
	}
}

func (h *SiteManagerHandler) saveSite(c *gin.Context, data siteFormPage) {
	form := data.Form.Trimmed()
	data.Form = form
	data.Result = validator.CheckSite(form)
	if !data.Result.Valid() {
		data.setError("Por favor, revisa los campos marcados en rojo.")
		h.renderSiteForm(c, http.StatusBadRequest, data)
		return
	}

	created, err := h.store.CreateSite(c.Request.Context(), domain.NewSite{
		Name:        form.Name,
		URL:         form.URL,
		User:        form.User,
		Password:    form.Password,
		Description: form.Description,
		CategoryID:  data.CategoryID,
	})
	if err != nil {
		slog.Error("Error al conectar con el servidor", "error", err, "category_id", data.CategoryID)
		data.setError("Error al conectar con el servidor")
		h.renderSiteForm(c, http.StatusBadGateway, data)
		return
	}

	slog.Info("Site created", "id", created.ID, "category_id", data.CategoryID)
	redirect(c, indexURL("categoryId", data.CategoryID.String(), "notice", "site-created"))
}

func (h *SiteManagerHandler) renderSiteForm(c *gin.Context, status int, data siteFormPage) {
	data.Title = "Nuevo site"
	data.CancelURL = indexURL("categoryId", data.CategoryID.String())
	if data.Result.Fields == nil {
		data.Result = validator.Result{Fields: map[string]validator.FieldState{}}
	}
	c.HTML(status, "site_form.html", data)
}
