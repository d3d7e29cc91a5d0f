// internal/handler/list.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"site-manager/internal/confirm"
	"site-manager/internal/domain"
	"site-manager/internal/middleware"
	"site-manager/internal/search"
	"site-manager/internal/storage"
	"site-manager/internal/validator"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const categoryNameRequired = "El nombre es obligatorio"

type categoryItem struct {
	domain.Category
	Active    bool
	SelectURL string
	DeleteURL string
}

type siteRow struct {
	domain.Site
	Created   time.Time
	Revealed  bool
	RevealURL string
	DeleteURL string
}

type indexPage struct {
	page
	Query      string
	Categories []categoryItem
	ActiveID   domain.ID
	Sites      []siteRow
	AddSiteURL string

	ShowAddCategory bool
	AddCategoryURL  string
	CloseModalURL   string
	CategoryName    string
	CategoryError   string
}

type indexOptions struct {
	categoryID   string
	query        string
	reveal       string
	notice       string
	showModal    bool
	categoryName string
	modalError   string
}

// Index renders the category/site list view.
func (h *SiteManagerHandler) Index(c *gin.Context) {
	h.renderIndex(c, http.StatusOK, indexOptions{
		categoryID: c.Query("categoryId"),
		query:      c.Query("q"),
		reveal:     c.Query("reveal"),
		notice:     c.Query("notice"),
		showModal:  c.Query("add") == "1",
	})
}

func (h *SiteManagerHandler) renderIndex(c *gin.Context, status int, opts indexOptions) {
	data := indexPage{
		page:            page{Title: "Gestor de contraseñas"},
		Query:           opts.query,
		ShowAddCategory: opts.showModal,
		CategoryName:    opts.categoryName,
		CategoryError:   opts.modalError,
	}
	data.setNotice(opts.notice)

	ctx := c.Request.Context()
	categories, err := h.store.ListCategories(ctx)
	if err != nil {
		slog.Error("Error cargando categorías", "error", err)
		data.setError("Error cargando categorías")
		data.AddSiteURL = "/site/add"
		data.AddCategoryURL = indexURL("add", "1")
		data.CloseModalURL = "/"
		c.HTML(http.StatusBadGateway, "index.html", data)
		return
	}

	// The requested category wins; otherwise the first one is selected.
	if len(categories) > 0 {
		data.ActiveID = categories[0].ID
		if requested, ok := idParam(opts.categoryID); ok {
			for _, cat := range categories {
				if cat.ID == requested {
					data.ActiveID = requested
					break
				}
			}
		}
	}

	active := data.ActiveID.String()
	for _, cat := range search.Categories(categories, opts.query) {
		data.Categories = append(data.Categories, categoryItem{
			Category:  cat,
			Active:    cat.ID == data.ActiveID,
			SelectURL: indexURL("categoryId", cat.ID.String()),
			DeleteURL: "/categories/" + cat.ID.String() + "/delete",
		})
	}
	data.AddSiteURL = pathWithQuery("/site/add", "categoryId", active)
	data.AddCategoryURL = indexURL("categoryId", active, "q", opts.query, "add", "1")
	data.CloseModalURL = indexURL("categoryId", active, "q", opts.query)

	if !data.ActiveID.IsZero() {
		sites, err := h.store.ListSites(ctx)
		if err != nil {
			slog.Error("Error cargando sites", "error", err, "category_id", data.ActiveID)
			data.setError("Error cargando sites")
			status = http.StatusBadGateway
		} else {
			now := h.now()
			for _, s := range search.Sites(sites, data.ActiveID, opts.query) {
				revealed := opts.reveal != "" && opts.reveal == s.ID.String()
				toggle := s.ID.String()
				if revealed {
					toggle = ""
				}
				data.Sites = append(data.Sites, siteRow{
					Site:      s,
					Created:   s.CreatedOn(now),
					Revealed:  revealed,
					RevealURL: indexURL("categoryId", active, "q", opts.query, "reveal", toggle),
					DeleteURL: pathWithQuery("/sites/"+s.ID.String()+"/delete", "categoryId", active),
				})
			}
		}
	}

	slog.Debug("Index rendered", "categories", len(data.Categories), "sites", len(data.Sites), "category_id", data.ActiveID)
	c.HTML(status, "index.html", data)
}

// CreateCategory handles the add-category modal.
func (h *SiteManagerHandler) CreateCategory(c *gin.Context) {
	var form validator.CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Debug("CreateCategory bind failed", "error", err)
	}
	form.Name = strings.TrimSpace(form.Name)
	categoryID := c.PostForm("categoryId")

	if err := validator.Struct(form); err != nil {
		h.renderIndex(c, http.StatusBadRequest, indexOptions{
			categoryID: categoryID,
			showModal:  true,
			modalError: categoryNameRequired,
		})
		return
	}

	created, err := h.store.CreateCategory(c.Request.Context(), form.Name)
	if err != nil {
		slog.Error("Error al añadir categoría", "error", err, "name", form.Name)
		h.renderIndex(c, http.StatusBadGateway, indexOptions{
			categoryID:   categoryID,
			showModal:    true,
			categoryName: form.Name,
			modalError:   "Error al añadir categoría",
		})
		return
	}

	slog.Info("Category created", "id", created.ID, "name", created.Name)
	redirect(c, indexURL("notice", "category-created"))
}

type confirmPage struct {
	page
	Question   string
	ActionURL  string
	TokenField string
	Token      string
	CategoryID string
	CancelURL  string
}

// ConfirmDeleteCategory asks before deleting a category and its sites.
func (h *SiteManagerHandler) ConfirmDeleteCategory(c *gin.Context) {
	id, ok := idParam(c.Param("id"))
	if !ok {
		redirect(c, indexURL("notice", "invalid-id"))
		return
	}
	h.renderConfirm(c, confirm.DeleteCategory, id, confirmPage{
		Question:  "¿Eliminar categoría y contenido?",
		ActionURL: "/categories/" + id.String() + "/delete",
		CancelURL: indexURL("categoryId", id.String()),
	})
}

// ConfirmDeleteSite asks before deleting one site.
func (h *SiteManagerHandler) ConfirmDeleteSite(c *gin.Context) {
	id, ok := idParam(c.Param("id"))
	if !ok {
		redirect(c, indexURL("notice", "invalid-id"))
		return
	}
	categoryID := c.Query("categoryId")
	h.renderConfirm(c, confirm.DeleteSite, id, confirmPage{
		Question:   "¿Eliminar sitio?",
		ActionURL:  "/sites/" + id.String() + "/delete",
		CategoryID: categoryID,
		CancelURL:  indexURL("categoryId", categoryID),
	})
}

func (h *SiteManagerHandler) renderConfirm(c *gin.Context, action string, id domain.ID, data confirmPage) {
	token, err := h.tokens.GenerateToken(action, id)
	if err != nil {
		slog.Error("Failed to issue confirmation", "error", err, "action", action, "id", id)
		c.String(http.StatusInternalServerError, "Internal error")
		return
	}
	data.Title = "Confirmar"
	data.TokenField = middleware.TokenField
	data.Token = token
	c.HTML(http.StatusOK, "confirm.html", data)
}

// DeleteCategory runs after RequireConfirmation.
func (h *SiteManagerHandler) DeleteCategory(c *gin.Context) {
	id := c.MustGet(middleware.ConfirmedIDKey).(domain.ID)

	err := h.store.DeleteCategory(c.Request.Context(), id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("Error al eliminar categoría", "error", err, "id", id)
		redirect(c, indexURL("notice", "category-delete-failed"))
		return
	}

	slog.Info("Category deleted", "id", id)
	redirect(c, indexURL("notice", "category-deleted"))
}

// DeleteSite runs after RequireConfirmation.
func (h *SiteManagerHandler) DeleteSite(c *gin.Context) {
	id := c.MustGet(middleware.ConfirmedIDKey).(domain.ID)
	categoryID := c.PostForm("categoryId")

	err := h.store.DeleteSite(c.Request.Context(), id)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("Error al eliminar site", "error", err, "id", id)
		redirect(c, indexURL("categoryId", categoryID, "notice", "site-delete-failed"))
		return
	}

	slog.Info("Site deleted", "id", id, "category_id", categoryID)
	redirect(c, indexURL("categoryId", categoryID, "notice", "site-deleted"))
}
