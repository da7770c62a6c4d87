package pagesapi

import "time"

type BlockDTO struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Image   string `json:"image,omitempty"`
}

type AssociationDTO struct {
	ID      uint   `json:"id"`
	RefID   uint   `json:"ref_id"`
	Section string `json:"section,omitempty"`
	Order   int    `json:"order"`
}

type LinkDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Order int    `json:"order"`
}

type RelatedDTO struct {
	PageID uint `json:"page_id"`
	Order  *int `json:"order,omitempty"`
}

type PageDTO struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Type           string     `json:"type"`
	State          string     `json:"state"`
	IsActive       bool       `json:"is_active"`
	Publicable     bool       `json:"publicable"`
	DateStart      time.Time  `json:"date_start"`
	DateEnd        *time.Time `json:"date_end,omitempty"`
	BaseTemplateID uint       `json:"base_template_id"`
	DraftOf        *uint      `json:"draft_of,omitempty"`
}

type GetPageResponse struct {
	Page         PageDTO          `json:"page"`
	Blocks       []BlockDTO       `json:"blocks"`
	Carousels    []AssociationDTO `json:"carousels"`
	Menus        []AssociationDTO `json:"menus"`
	Links        []LinkDTO        `json:"links"`
	Publications []AssociationDTO `json:"publications"`
	Related      []RelatedDTO     `json:"related"`
	Categories   []CategoryDTO    `json:"categories"`
	Drafts       []PageDTO        `json:"drafts"`
}

type GetBlocksResponse struct {
	Section string     `json:"section,omitempty"`
	Blocks  []BlockDTO `json:"blocks"`
}

type CategoryDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageHTML   string `json:"image_html"`
}

type SavePageRequest struct {
	Name           string     `json:"name" binding:"required"`
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	State          string     `json:"state"`
	IsActive       *bool      `json:"is_active"`
	DateStart      time.Time  `json:"date_start" binding:"required"`
	DateEnd        *time.Time `json:"date_end"`
	BaseTemplateID uint       `json:"base_template_id" binding:"required"`
	DraftOf        *uint      `json:"draft_of"`
}

type AddRelatedRequest struct {
	RelatedPageID uint `json:"related_page_id" binding:"required"`
	Order         *int `json:"order"`
}

type BlockTypeDTO struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Placeholder bool   `json:"placeholder"`
}

type GetBlockTypesResponse struct {
	Version int            `json:"version"`
	Types   []BlockTypeDTO `json:"types"`
}

type SaveBlockRequest struct {
	Name    string  `json:"name" binding:"required"`
	Type    string  `json:"type" binding:"required"`
	Content string  `json:"content"`
	Image   *string `json:"image"`
}

type SetBlockRequest struct {
	BlockID  uint   `json:"block_id" binding:"required"`
	Section  string `json:"section"`
	Order    int    `json:"order"`
	IsActive *bool  `json:"is_active"`
}

type SetCategoriesRequest struct {
	CategoryIDs []uint `json:"category_ids"`
}

type TemplateDTO struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Note     string  `json:"note,omitempty"`
	Image    *string `json:"image,omitempty"`
	IsActive bool    `json:"is_active"`
}

type SaveTemplateRequest struct {
	Name     string  `json:"name" binding:"required"`
	Note     string  `json:"note"`
	Image    *string `json:"image"`
	IsActive *bool   `json:"is_active"`
}

type SetTemplateBlockRequest struct {
	ID       uint   `json:"id"`
	BlockID  uint   `json:"block_id" binding:"required"`
	Section  string `json:"section"`
	Order    int    `json:"order"`
	IsActive *bool  `json:"is_active"`
}
