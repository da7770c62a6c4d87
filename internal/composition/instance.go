package composition

import (
	"context"
	"fmt"
	"slices"

	"cms-app/internal/domain/media"
	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"

	"go.uber.org/zap"
)

type blockCacheKey struct {
	pageID  uint
	section string
}

// Loader builds PageInstances. Every Load returns a fresh instance with empty
// caches.
type Loader struct {
	store    Store
	resolver *BlockResolver
	types    PlaceholderTypes
	log      *zap.Logger
}

func NewLoader(store Store, types PlaceholderTypes, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if types == nil {
		types = templates.DefaultRegistry
	}
	return &Loader{
		store:    store,
		resolver: NewBlockResolver(store, log),
		types:    types,
		log:      log,
	}
}

func (l *Loader) Load(ctx context.Context, pageID uint) (*PageInstance, error) {
	p, err := l.store.Page(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("load page %d: %w", pageID, err)
	}
	return l.Wrap(p), nil
}

// Wrap builds an instance around an already loaded page row.
func (l *Loader) Wrap(p *pages.Page) *PageInstance {
	return &PageInstance{
		Page:   p,
		loader: l,
		blocks: make(map[blockCacheKey][]templates.TemplateBlock),
	}
}

// PageInstance is one loaded page plus everything memoized for it. It serves
// one request and is not safe for concurrent use; never share it across
// requests, they may read different snapshots.
type PageInstance struct {
	Page *pages.Page

	loader *Loader
	blocks map[blockCacheKey][]templates.TemplateBlock

	carousels    []pages.PageCarousel
	menus        []pages.PageMenu
	links        []pages.PageLink
	publications []pages.PagePublication
	related      []pages.PageRelated
	categories   []pages.Category

	carouselsLoaded    bool
	menusLoaded        bool
	linksLoaded        bool
	publicationsLoaded bool
	relatedLoaded      bool
	categoriesLoaded   bool
}

// Blocks returns the effective blocks of section ("" for all sections).
// Results are cached per section for the life of the instance; callers get
// their own copy.
func (pi *PageInstance) Blocks(ctx context.Context, section string) ([]templates.TemplateBlock, error) {
	key := blockCacheKey{pageID: pi.Page.ID, section: section}
	if cached, ok := pi.blocks[key]; ok {
		pi.loader.log.Debug("page blocks cache hit", zap.Uint("page_id", key.pageID), zap.String("section", section))
		return slices.Clone(cached), nil
	}

	blocks, err := pi.loader.resolver.Resolve(ctx, pi.Page, section)
	if err != nil {
		return nil, err
	}
	pi.blocks[key] = blocks
	return slices.Clone(blocks), nil
}

// Placeholders returns the placeholder blocks across all sections.
func (pi *PageInstance) Placeholders(ctx context.Context) ([]templates.TemplateBlock, error) {
	blocks, err := pi.Blocks(ctx, "")
	if err != nil {
		return nil, err
	}
	return FilterPlaceholders(pi.loader.types, blocks)
}

func (pi *PageInstance) Publicable() bool {
	return pi.Page.Publicable()
}

func (pi *PageInstance) Carousels(ctx context.Context) ([]pages.PageCarousel, error) {
	if pi.carouselsLoaded {
		return pi.carousels, nil
	}
	rows, err := pi.loader.store.ActiveCarousels(ctx, pi.Page.ID)
	if err != nil {
		return nil, fmt.Errorf("load carousels of page %d: %w", pi.Page.ID, err)
	}
	pi.carousels, pi.carouselsLoaded = rows, true
	return rows, nil
}

func (pi *PageInstance) Menus(ctx context.Context) ([]pages.PageMenu, error) {
	if pi.menusLoaded {
		return pi.menus, nil
	}
	rows, err := pi.loader.store.ActiveMenus(ctx, pi.Page.ID)
	if err != nil {
		return nil, fmt.Errorf("load menus of page %d: %w", pi.Page.ID, err)
	}
	pi.menus, pi.menusLoaded = rows, true
	return rows, nil
}

func (pi *PageInstance) Links(ctx context.Context) ([]pages.PageLink, error) {
	if pi.linksLoaded {
		return pi.links, nil
	}
	rows, err := pi.loader.store.ActiveLinks(ctx, pi.Page.ID)
	if err != nil {
		return nil, fmt.Errorf("load links of page %d: %w", pi.Page.ID, err)
	}
	pi.links, pi.linksLoaded = rows, true
	return rows, nil
}

func (pi *PageInstance) Publications(ctx context.Context) ([]pages.PagePublication, error) {
	if pi.publicationsLoaded {
		return pi.publications, nil
	}
	rows, err := pi.loader.store.ActivePublications(ctx, pi.Page.ID)
	if err != nil {
		return nil, fmt.Errorf("load publications of page %d: %w", pi.Page.ID, err)
	}
	pi.publications, pi.publicationsLoaded = rows, true
	return rows, nil
}

func (pi *PageInstance) Related(ctx context.Context) ([]pages.PageRelated, error) {
	if pi.relatedLoaded {
		return pi.related, nil
	}
	rows, err := pi.loader.store.ActiveRelated(ctx, pi.Page.ID)
	if err != nil {
		return nil, fmt.Errorf("load related pages of page %d: %w", pi.Page.ID, err)
	}
	pi.related, pi.relatedLoaded = rows, true
	return rows, nil
}

// Categories returns the page's categories ordered by name.
func (pi *PageInstance) Categories(ctx context.Context) ([]pages.Category, error) {
	if pi.categoriesLoaded {
		return pi.categories, nil
	}
	rows, err := pi.loader.store.PageCategories(ctx, pi.Page.ID)
	if err != nil {
		return nil, fmt.Errorf("load categories of page %d: %w", pi.Page.ID, err)
	}
	pi.categories, pi.categoriesLoaded = rows, true
	return rows, nil
}

// CategoryImages renders one <img> tag per category, in category order.
func (pi *PageInstance) CategoryImages(ctx context.Context, cfg media.Config) ([]string, error) {
	cats, err := pi.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.ImageHTML(cfg))
	}
	return out, nil
}

// Reload refetches the page row and drops every memoized value.
func (pi *PageInstance) Reload(ctx context.Context) error {
	fresh, err := pi.loader.Load(ctx, pi.Page.ID)
	if err != nil {
		return err
	}
	*pi = *fresh
	return nil
}
