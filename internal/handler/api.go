// internal/handler/api.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"site-manager/internal/password"
	"site-manager/internal/search"
	"site-manager/internal/validator"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListCategories godoc
// @Summary List categories filtered by name
// @Param q query string false "Case-insensitive substring"
// @Success 200 {array} domain.Category
// @Failure 502 {object} map[string]string
// @Router /api/v1/categories [get]
func (h *SiteManagerHandler) ListCategories(c *gin.Context) {
	categories, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		slog.Error("ListCategories failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error cargando categorías"})
		return
	}
	c.JSON(http.StatusOK, search.Categories(categories, c.Query("q")))
}

// ListSites godoc
// @Summary List the sites of one category filtered by name or user
// @Param categoryId query string true "Category id"
// @Param q query string false "Case-insensitive substring"
// @Success 200 {array} domain.Site
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/sites [get]
func (h *SiteManagerHandler) ListSites(c *gin.Context) {
	categoryID, ok := idParam(c.Query("categoryId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categoryId query param required"})
		return
	}

	sites, err := h.store.ListSites(c.Request.Context())
	if err != nil {
		slog.Error("ListSites failed", "error", err, "category_id", categoryID)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error cargando sites"})
		return
	}
	c.JSON(http.StatusOK, search.Sites(sites, categoryID, c.Query("q")))
}

// GeneratePassword godoc
// @Summary Generate a password with every character class
// @Param length query int false "Length, 12 by default"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/v1/password [get]
func (h *SiteManagerHandler) GeneratePassword(c *gin.Context) {
	length := password.DefaultLength
	if raw := c.Query("length"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "length must be a number"})
			return
		}
		length = n
	}

	generated, err := h.passwords.GenerateN(length)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) || errors.Is(err, password.ErrTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("GeneratePassword failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"password": generated})
}

// ValidateSite godoc
// @Summary Validate a site form; "field" limits the check to some fields
// @Accept json
// @Param request body validator.SiteForm true "Site form"
// @Param field query string false "Field to check, repeatable"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/v1/sites/validate [post]
func (h *SiteManagerHandler) ValidateSite(c *gin.Context) {
	var form validator.SiteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	result := validator.CheckSite(form.Trimmed(), c.QueryArray("field")...)
	c.JSON(http.StatusOK, gin.H{
		"valid":    result.Valid(),
		"fields":   result.Fields,
		"messages": result.Messages,
	})
}
