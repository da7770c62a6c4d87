package pagesapi

import (
	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"
)

func toPageDTO(p pages.Page) PageDTO {
	return PageDTO{
		ID:             p.ID,
		Name:           p.Name,
		Title:          p.Title,
		Description:    p.Description,
		Type:           p.Type,
		State:          p.State,
		IsActive:       p.IsActive,
		Publicable:     p.Publicable(),
		DateStart:      p.DateStart,
		DateEnd:        p.DateEnd,
		BaseTemplateID: p.BaseTemplateID,
		DraftOf:        p.DraftOf,
	}
}

func toBlockDTOs(blocks []templates.TemplateBlock) []BlockDTO {
	out := make([]BlockDTO, 0, len(blocks))
	for _, b := range blocks {
		dto := BlockDTO{ID: b.ID, Name: b.Name, Type: string(b.Type), Content: b.Content}
		if b.Image != nil {
			dto.Image = *b.Image
		}
		out = append(out, dto)
	}
	return out
}

func toCarouselDTOs(rows []pages.PageCarousel) []AssociationDTO {
	out := make([]AssociationDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, AssociationDTO{ID: r.ID, RefID: r.CarouselID, Section: r.Section, Order: r.Order})
	}
	return out
}

func toMenuDTOs(rows []pages.PageMenu) []AssociationDTO {
	out := make([]AssociationDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, AssociationDTO{ID: r.ID, RefID: r.MenuID, Section: r.Section, Order: r.Order})
	}
	return out
}

func toPublicationDTOs(rows []pages.PagePublication) []AssociationDTO {
	out := make([]AssociationDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, AssociationDTO{ID: r.ID, RefID: r.PublicationID, Order: r.Order})
	}
	return out
}

func toLinkDTOs(rows []pages.PageLink) []LinkDTO {
	out := make([]LinkDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, LinkDTO{ID: r.ID, Name: r.Name, URL: r.URL, Order: r.Order})
	}
	return out
}

func toRelatedDTOs(rows []pages.PageRelated) []RelatedDTO {
	out := make([]RelatedDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, RelatedDTO{PageID: r.RelatedPageID, Order: r.Order})
	}
	return out
}

func (h *Handler) toCategoryDTOs(cats []pages.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(cats))
	for _, cat := range cats {
		out = append(out, CategoryDTO{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			ImageHTML:   cat.ImageHTML(h.media),
		})
	}
	return out
}

func toTemplateDTO(t templates.PageTemplate) TemplateDTO {
	return TemplateDTO{ID: t.ID, Name: t.Name, Note: t.Note, Image: t.Image, IsActive: t.IsActive}
}

func (req SavePageRequest) apply(p *pages.Page) {
	p.Name = req.Name
	p.Title = req.Title
	p.Description = req.Description
	p.Type = req.Type
	p.State = req.State
	p.DateStart = req.DateStart
	p.DateEnd = req.DateEnd
	p.BaseTemplateID = req.BaseTemplateID
	p.DraftOf = req.DraftOf
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}
