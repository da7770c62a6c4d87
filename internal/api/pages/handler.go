package pagesapi

import (
	"errors"
	"net/http"
	"strconv"

	"cms-app/internal/composition"
	"cms-app/internal/domain/media"
	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	store   composition.Store
	loader  *composition.Loader
	service *composition.PageService
	media   media.Config
	log     *zap.Logger
}

func NewHandler(store composition.Store, mediaCfg media.Config, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		store:   store,
		loader:  composition.NewLoader(store, nil, log),
		service: composition.NewPageService(store, log),
		media:   mediaCfg,
		log:     log,
	}
}

// GET /pages/:id
func (h *Handler) GetPage(c *gin.Context) {
	inst, ok := h.loadPage(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	blocks, err := inst.Blocks(ctx, "")
	if err != nil {
		h.fail(c, err, "Failed to resolve page blocks")
		return
	}
	carousels, err := inst.Carousels(ctx)
	if err != nil {
		h.fail(c, err, "Failed to load carousels")
		return
	}
	menus, err := inst.Menus(ctx)
	if err != nil {
		h.fail(c, err, "Failed to load menus")
		return
	}
	links, err := inst.Links(ctx)
	if err != nil {
		h.fail(c, err, "Failed to load links")
		return
	}
	pubs, err := inst.Publications(ctx)
	if err != nil {
		h.fail(c, err, "Failed to load publications")
		return
	}
	related, err := inst.Related(ctx)
	if err != nil {
		h.fail(c, err, "Failed to load related pages")
		return
	}
	cats, err := inst.Categories(ctx)
	if err != nil {
		h.fail(c, err, "Failed to load categories")
		return
	}
	drafts, err := h.store.Drafts(ctx, inst.Page.ID)
	if err != nil {
		h.fail(c, err, "Failed to load drafts")
		return
	}

	resp := GetPageResponse{
		Page:         toPageDTO(*inst.Page),
		Blocks:       toBlockDTOs(blocks),
		Carousels:    toCarouselDTOs(carousels),
		Menus:        toMenuDTOs(menus),
		Links:        toLinkDTOs(links),
		Publications: toPublicationDTOs(pubs),
		Related:      toRelatedDTOs(related),
		Categories:   h.toCategoryDTOs(cats),
		Drafts:       make([]PageDTO, 0, len(drafts)),
	}
	for _, d := range drafts {
		resp.Drafts = append(resp.Drafts, toPageDTO(d))
	}

	c.JSON(http.StatusOK, resp)
}

// GET /pages/:id/blocks?section=
func (h *Handler) GetPageBlocks(c *gin.Context) {
	inst, ok := h.loadPage(c)
	if !ok {
		return
	}

	section := c.Query("section")
	blocks, err := inst.Blocks(c.Request.Context(), section)
	if err != nil {
		h.fail(c, err, "Failed to resolve page blocks")
		return
	}

	c.JSON(http.StatusOK, GetBlocksResponse{Section: section, Blocks: toBlockDTOs(blocks)})
}

// GET /pages/:id/placeholders
func (h *Handler) GetPagePlaceholders(c *gin.Context) {
	inst, ok := h.loadPage(c)
	if !ok {
		return
	}

	blocks, err := inst.Placeholders(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to resolve placeholder blocks")
		return
	}

	c.JSON(http.StatusOK, GetBlocksResponse{Blocks: toBlockDTOs(blocks)})
}

// GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.store.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to load categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": h.toCategoryDTOs(cats)})
}

// GET /blocks/types
func (h *Handler) ListBlockTypes(c *gin.Context) {
	kinds := templates.DefaultRegistry.Kinds()
	out := GetBlockTypesResponse{Version: templates.RegistryVersion, Types: make([]BlockTypeDTO, 0, len(kinds))}
	for _, k := range kinds {
		out.Types = append(out.Types, BlockTypeDTO{Type: string(k.Type), Label: k.Label, Placeholder: k.Placeholder})
	}
	c.JSON(http.StatusOK, out)
}

// POST /admin/blocks
func (h *Handler) CreateTemplateBlock(c *gin.Context) {
	var req SaveBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b := templates.TemplateBlock{
		Name:     req.Name,
		Type:     templates.BlockType(req.Type),
		Content:  req.Content,
		Image:    req.Image,
		IsActive: true,
	}
	if err := h.service.SaveTemplateBlock(c.Request.Context(), &b); err != nil {
		h.fail(c, err, "Failed to create block")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": b.ID})
}

// POST /admin/pages
func (h *Handler) CreatePage(c *gin.Context) {
	var req SavePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := pages.Page{IsActive: true}
	req.apply(&p)

	if err := h.service.Save(c.Request.Context(), &p); err != nil {
		h.fail(c, err, "Failed to create page")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": p.ID})
}

// PUT /admin/pages/:id
func (h *Handler) UpdatePage(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	var req SavePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	p, err := h.store.Page(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to load page")
		return
	}
	req.apply(p)

	if err := h.service.Save(ctx, p); err != nil {
		h.fail(c, err, "Failed to update page")
		return
	}
	c.JSON(http.StatusOK, toPageDTO(*p))
}

// DELETE /admin/pages/:id
func (h *Handler) DeletePage(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// POST /admin/pages/:id/related
func (h *Handler) AddRelatedPage(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	var req AddRelatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.AddRelated(c.Request.Context(), id, req.RelatedPageID, req.Order); err != nil {
		h.fail(c, err, "Failed to add related page")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

// PUT /admin/pages/:id/blocks
func (h *Handler) SetPageBlock(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	var req SetBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pb := pages.PageBlock{
		PageID:   id,
		BlockID:  req.BlockID,
		Section:  req.Section,
		Order:    req.Order,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := h.service.SetBlock(c.Request.Context(), &pb); err != nil {
		h.fail(c, err, "Failed to save page block")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": pb.ID})
}

// PUT /admin/pages/:id/categories
func (h *Handler) SetPageCategories(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	var req SetCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.service.SetCategories(ctx, id, req.CategoryIDs); err != nil {
		h.fail(c, err, "Failed to set page categories")
		return
	}
	cats, err := h.store.PageCategories(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to load categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": h.toCategoryDTOs(cats)})
}

func (h *Handler) loadPage(c *gin.Context) (*composition.PageInstance, bool) {
	id, ok := pageID(c)
	if !ok {
		return nil, false
	}
	inst, err := h.loader.Load(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to load page")
		return nil, false
	}
	return inst, true
}

func pageID(c *gin.Context) (uint, bool) {
	return idParam(c, "page")
}

func idParam(c *gin.Context, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " id"})
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, composition.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, composition.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, composition.ErrConstraintViolation), errors.Is(err, composition.ErrDanglingReference):
		c.JSON(http.StatusConflict, gin.H{"error": msg, "details": err.Error()})
	default:
		h.log.Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
