package composition

import (
	"context"

	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"
)

// BlockAssignment is one (order, block) pair from a page override or a
// template default.
type BlockAssignment struct {
	Order   int
	BlockID uint
}

// BlockStore is what the resolver reads. An empty section means no section
// filter.
type BlockStore interface {
	// ActivePageBlocks returns the page's active overrides.
	ActivePageBlocks(ctx context.Context, pageID uint, section string) ([]BlockAssignment, error)
	// InactivePageBlockIDs returns the blocks the page explicitly turned off,
	// across all sections.
	InactivePageBlockIDs(ctx context.Context, pageID uint) ([]uint, error)
	// TemplateDefaultBlocks returns the template's active defaults, leaving out
	// the blocks in exclude.
	TemplateDefaultBlocks(ctx context.Context, templateID uint, section string, exclude []uint) ([]BlockAssignment, error)
	TemplateBlock(ctx context.Context, id uint) (*templates.TemplateBlock, error)
}

// AssociationStore returns active page associations ordered by rank.
type AssociationStore interface {
	ActiveCarousels(ctx context.Context, pageID uint) ([]pages.PageCarousel, error)
	ActiveMenus(ctx context.Context, pageID uint) ([]pages.PageMenu, error)
	ActiveLinks(ctx context.Context, pageID uint) ([]pages.PageLink, error)
	ActivePublications(ctx context.Context, pageID uint) ([]pages.PagePublication, error)
	ActiveRelated(ctx context.Context, pageID uint) ([]pages.PageRelated, error)
}

// RelationStore holds the related-pages graph.
type RelationStore interface {
	// RelationsFrom returns every page -> X row, active or not.
	RelationsFrom(ctx context.Context, pageID uint) ([]pages.PageRelated, error)
	RelationExists(ctx context.Context, pageID, relatedPageID uint) (bool, error)
	// InsertRelation fails with ErrConstraintViolation when the pair exists.
	InsertRelation(ctx context.Context, rel *pages.PageRelated) error
	// DeleteRelationsTo removes every X -> page row.
	DeleteRelationsTo(ctx context.Context, pageID uint) error
}

// PageStore writes fail with ErrNotFound when a referenced row (template,
// block, category, page) does not exist.
type PageStore interface {
	Page(ctx context.Context, id uint) (*pages.Page, error)
	SavePage(ctx context.Context, p *pages.Page) error
	// DeletePage fails with ErrDanglingReference when rows still point at the
	// page and the store does not cascade.
	DeletePage(ctx context.Context, id uint) error
	Drafts(ctx context.Context, pageID uint) ([]pages.Page, error)
	// SavePageBlock upserts the override for (page, block).
	SavePageBlock(ctx context.Context, pb *pages.PageBlock) error
	Categories(ctx context.Context) ([]pages.Category, error)
	// PageCategories returns the categories of a page ordered by name.
	PageCategories(ctx context.Context, pageID uint) ([]pages.Category, error)
	// SetPageCategories replaces the page's categories with categoryIDs.
	SetPageCategories(ctx context.Context, pageID uint, categoryIDs []uint) error
}

type TemplateStore interface {
	PageTemplate(ctx context.Context, id uint) (*templates.PageTemplate, error)
	SavePageTemplate(ctx context.Context, t *templates.PageTemplate) error
	// SavePageTemplateBlock creates or updates one template default row.
	SavePageTemplateBlock(ctx context.Context, tb *templates.PageTemplateBlock) error
	SaveTemplateBlock(ctx context.Context, b *templates.TemplateBlock) error
}

type Store interface {
	BlockStore
	TemplateStore
	AssociationStore
	RelationStore
	PageStore

	// Transaction runs fn against a store bound to one transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
