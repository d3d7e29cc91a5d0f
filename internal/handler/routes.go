// internal/handler/routes.go
package handler

import (
	"net/http"
	"site-manager/internal/confirm"
	"site-manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the web views and the JSON API on router.
func SetupRoutes(router *gin.Engine, h *SiteManagerHandler, confirmMiddleware *middleware.ConfirmMiddleware) {
	router.SetHTMLTemplate(Templates())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Category/site list view
	router.GET("/", h.Index)
	router.POST("/categories", h.CreateCategory)
	router.GET("/categories/:id/delete", h.ConfirmDeleteCategory)
	router.POST("/categories/:id/delete",
		confirmMiddleware.RequireConfirmation(confirm.DeleteCategory, "/"), h.DeleteCategory)
	router.GET("/sites/:id/delete", h.ConfirmDeleteSite)
	router.POST("/sites/:id/delete",
		confirmMiddleware.RequireConfirmation(confirm.DeleteSite, "/"), h.DeleteSite)

	// Site creation view
	router.GET("/site/add", h.AddSite)
	router.GET("/site/new", h.NewSite)
	router.POST("/site/new", h.SubmitSite)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/categories", h.ListCategories)
		v1.GET("/sites", h.ListSites)
		v1.GET("/password", h.GeneratePassword)
		v1.POST("/sites/validate", h.ValidateSite)
	}
}
