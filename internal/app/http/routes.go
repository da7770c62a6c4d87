package routes

import (
	pagesapi "cms-app/internal/api/pages"
	"cms-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *pagesapi.Handler, jwtSecret string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/pages/:id", h.GetPage)
	r.GET("/pages/:id/blocks", h.GetPageBlocks)
	r.GET("/pages/:id/placeholders", h.GetPagePlaceholders)
	r.GET("/categories", h.ListCategories)
	r.GET("/blocks/types", h.ListBlockTypes)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(jwtSecret),
		middleware.RequireRole("admin"),
		middleware.SanitizeAndCleanInputMiddleware("content", "image"),
	)
	admin.POST("/blocks", h.CreateTemplateBlock)
	admin.POST("/pages", h.CreatePage)
	admin.PUT("/pages/:id", h.UpdatePage)
	admin.DELETE("/pages/:id", h.DeletePage)
	admin.POST("/pages/:id/related", h.AddRelatedPage)
	admin.PUT("/pages/:id/blocks", h.SetPageBlock)
	admin.PUT("/pages/:id/categories", h.SetPageCategories)
	admin.POST("/templates", h.CreateTemplate)
	admin.PUT("/templates/:id", h.UpdateTemplate)
	admin.PUT("/templates/:id/blocks", h.SetTemplateBlock)
}
