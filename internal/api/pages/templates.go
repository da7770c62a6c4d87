package pagesapi

import (
	"net/http"

	"cms-app/internal/domain/templates"

	"github.com/gin-gonic/gin"
)

// POST /admin/templates
func (h *Handler) CreateTemplate(c *gin.Context) {
	var req SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := templates.PageTemplate{IsActive: true}
	req.apply(&t)

	if err := h.service.SaveTemplate(c.Request.Context(), &t); err != nil {
		h.fail(c, err, "Failed to create template")
		return
	}
	c.JSON(http.StatusCreated, toTemplateDTO(t))
}

// PUT /admin/templates/:id
func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, ok := idParam(c, "template")
	if !ok {
		return
	}

	var req SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	t, err := h.store.PageTemplate(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to load template")
		return
	}
	req.apply(t)

	if err := h.service.SaveTemplate(ctx, t); err != nil {
		h.fail(c, err, "Failed to update template")
		return
	}
	c.JSON(http.StatusOK, toTemplateDTO(*t))
}

// PUT /admin/templates/:id/blocks
func (h *Handler) SetTemplateBlock(c *gin.Context) {
	id, ok := idParam(c, "template")
	if !ok {
		return
	}

	var req SetTemplateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tb := templates.PageTemplateBlock{
		ID:         req.ID,
		TemplateID: id,
		BlockID:    req.BlockID,
		Section:    req.Section,
		Order:      req.Order,
		IsActive:   req.IsActive == nil || *req.IsActive,
	}
	if err := h.service.SetTemplateBlock(c.Request.Context(), &tb); err != nil {
		h.fail(c, err, "Failed to save template block")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": tb.ID})
}

func (req SaveTemplateRequest) apply(t *templates.PageTemplate) {
	t.Name = req.Name
	t.Note = req.Note
	t.Image = req.Image
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
}
