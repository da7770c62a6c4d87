package composition

import (
	"context"
	"errors"
	"fmt"

	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"

	"go.uber.org/zap"
)

// SaveHandler runs after a page row is persisted, inside the same
// transaction.
type SaveHandler interface {
	PageSaved(ctx context.Context, tx Store, page *pages.Page) error
}

type SaveHandlerFunc func(ctx context.Context, tx Store, page *pages.Page) error

func (f SaveHandlerFunc) PageSaved(ctx context.Context, tx Store, page *pages.Page) error {
	return f(ctx, tx, page)
}

var ErrInvalidInput = errors.New("invalid input")

// PageService is the write path for pages. Save side effects live in
// explicit handlers rather than in the page model.
type PageService struct {
	store    Store
	sync     *RelationSynchronizer
	handlers []SaveHandler
	types    *templates.Registry
	log      *zap.Logger
}

func NewPageService(store Store, log *zap.Logger, extra ...SaveHandler) *PageService {
	if log == nil {
		log = zap.NewNop()
	}
	svc := &PageService{
		store: store,
		sync:  NewRelationSynchronizer(log),
		types: templates.DefaultRegistry,
		log:   log,
	}

	svc.handlers = append(svc.handlers, SaveHandlerFunc(func(ctx context.Context, tx Store, page *pages.Page) error {
		_, err := svc.sync.OnSave(ctx, tx, page)
		return err
	}))
	svc.handlers = append(svc.handlers, extra...)
	return svc
}

func (s *PageService) Save(ctx context.Context, p *pages.Page) error {
	if err := validatePage(p); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(tx Store) error {
		if _, err := tx.PageTemplate(ctx, p.BaseTemplateID); err != nil {
			return fmt.Errorf("load base template %d: %w", p.BaseTemplateID, err)
		}
		if err := tx.SavePage(ctx, p); err != nil {
			return fmt.Errorf("save page: %w", err)
		}
		return s.runHandlers(ctx, tx, p)
	})
	if err != nil {
		return err
	}

	s.log.Info("page saved", zap.Uint("page_id", p.ID), zap.String("state", p.State))
	return nil
}

// AddRelated adds page -> related and mirrors it.
func (s *PageService) AddRelated(ctx context.Context, pageID, relatedPageID uint, order *int) error {
	err := s.store.Transaction(ctx, func(tx Store) error {
		p, err := tx.Page(ctx, pageID)
		if err != nil {
			return fmt.Errorf("load page %d: %w", pageID, err)
		}
		if _, err := tx.Page(ctx, relatedPageID); err != nil {
			return fmt.Errorf("load related page %d: %w", relatedPageID, err)
		}

		rel := &pages.PageRelated{PageID: pageID, RelatedPageID: relatedPageID, Order: order, IsActive: true}
		if err := tx.InsertRelation(ctx, rel); err != nil {
			return fmt.Errorf("relate page %d -> %d: %w", pageID, relatedPageID, err)
		}
		return s.runHandlers(ctx, tx, p)
	})
	if err != nil {
		return err
	}

	s.log.Info("related page added", zap.Uint("page_id", pageID), zap.Uint("related_page_id", relatedPageID))
	return nil
}

// SetBlock stores a page level override for one block.
func (s *PageService) SetBlock(ctx context.Context, pb *pages.PageBlock) error {
	return s.store.Transaction(ctx, func(tx Store) error {
		if _, err := tx.Page(ctx, pb.PageID); err != nil {
			return fmt.Errorf("load page %d: %w", pb.PageID, err)
		}
		if _, err := tx.TemplateBlock(ctx, pb.BlockID); err != nil {
			return fmt.Errorf("load template block %d: %w", pb.BlockID, err)
		}
		if err := tx.SavePageBlock(ctx, pb); err != nil {
			return fmt.Errorf("save page block: %w", err)
		}
		return nil
	})
}

// SetCategories replaces the categories of a page.
func (s *PageService) SetCategories(ctx context.Context, pageID uint, categoryIDs []uint) error {
	return s.store.Transaction(ctx, func(tx Store) error {
		if _, err := tx.Page(ctx, pageID); err != nil {
			return fmt.Errorf("load page %d: %w", pageID, err)
		}
		if err := tx.SetPageCategories(ctx, pageID, categoryIDs); err != nil {
			return fmt.Errorf("set categories of page %d: %w", pageID, err)
		}
		return nil
	})
}

func (s *PageService) SaveTemplate(ctx context.Context, t *templates.PageTemplate) error {
	if t.Name == "" {
		return fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}
	if err := s.store.SavePageTemplate(ctx, t); err != nil {
		return fmt.Errorf("save page template: %w", err)
	}
	s.log.Info("page template saved", zap.Uint("template_id", t.ID))
	return nil
}

// SetTemplateBlock stores one template default. Unlike page overrides a
// template may place the same block in several sections.
func (s *PageService) SetTemplateBlock(ctx context.Context, tb *templates.PageTemplateBlock) error {
	return s.store.Transaction(ctx, func(tx Store) error {
		if _, err := tx.PageTemplate(ctx, tb.TemplateID); err != nil {
			return fmt.Errorf("load page template %d: %w", tb.TemplateID, err)
		}
		if _, err := tx.TemplateBlock(ctx, tb.BlockID); err != nil {
			return fmt.Errorf("load template block %d: %w", tb.BlockID, err)
		}
		if err := tx.SavePageTemplateBlock(ctx, tb); err != nil {
			return fmt.Errorf("save page template block: %w", err)
		}
		return nil
	})
}

// SaveTemplateBlock checks the block type and cleans the content before
// storing the block. An unknown type here is bad input, not configuration.
func (s *PageService) SaveTemplateBlock(ctx context.Context, b *templates.TemplateBlock) error {
	if b.Name == "" {
		return fmt.Errorf("%w: block name is required", ErrInvalidInput)
	}
	if err := templates.NormalizeContent(s.types, b); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.store.SaveTemplateBlock(ctx, b); err != nil {
		return fmt.Errorf("save template block: %w", err)
	}
	s.log.Info("template block saved", zap.Uint("block_id", b.ID), zap.String("type", string(b.Type)))
	return nil
}

// Delete removes the inbound relations first; the page row goes last.
func (s *PageService) Delete(ctx context.Context, pageID uint) error {
	err := s.store.Transaction(ctx, func(tx Store) error {
		if _, err := tx.Page(ctx, pageID); err != nil {
			return fmt.Errorf("load page %d: %w", pageID, err)
		}
		if err := s.sync.OnDelete(ctx, tx, pageID); err != nil {
			return err
		}
		if err := tx.DeletePage(ctx, pageID); err != nil {
			return fmt.Errorf("delete page %d: %w", pageID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("page deleted", zap.Uint("page_id", pageID))
	return nil
}

func (s *PageService) runHandlers(ctx context.Context, tx Store, p *pages.Page) error {
	for _, h := range s.handlers {
		if err := h.PageSaved(ctx, tx, p); err != nil {
			return err
		}
	}
	return nil
}

func validatePage(p *pages.Page) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case p.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case p.BaseTemplateID == 0:
		return fmt.Errorf("%w: base template is required", ErrInvalidInput)
	case p.DateStart.IsZero():
		return fmt.Errorf("%w: date_start is required", ErrInvalidInput)
	}
	if p.State == "" {
		p.State = pages.StateDraft
	}
	if p.State != pages.StateDraft && p.State != pages.StatePublished {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidInput, p.State)
	}
	if p.Type == "" {
		p.Type = pages.TypeStandard
	}
	if p.Type != pages.TypeStandard && p.Type != pages.TypeHome {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInput, p.Type)
	}
	if p.DateEnd != nil && !p.DateEnd.After(p.DateStart) {
		return fmt.Errorf("%w: date_end must be after date_start", ErrInvalidInput)
	}
	return nil
}
