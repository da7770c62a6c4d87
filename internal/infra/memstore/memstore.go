// Package memstore is an in-memory composition.Store. It enforces the same
// constraints the postgres schema does and is meant for tests and local
// tooling.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cms-app/internal/composition"
	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"
)

type Store struct {
	mu sync.Mutex

	nextID uint

	pagesByID      map[uint]pages.Page
	pageTemplates  map[uint]templates.PageTemplate
	blocks         map[uint]templates.TemplateBlock
	templateBlocks []templates.PageTemplateBlock
	pageBlocks     []pages.PageBlock
	related        []pages.PageRelated
	carousels      []pages.PageCarousel
	menus          []pages.PageMenu
	links          []pages.PageLink
	publications   []pages.PagePublication
	categories     []pages.Category
	pageCategories map[uint][]uint

	// Cascade mirrors ON DELETE CASCADE on related_page_id. Off by default,
	// which is how the schema ships.
	Cascade bool

	// Calls counts store reads by method name.
	Calls map[string]int
}

func New() *Store {
	return &Store{
		pagesByID:      make(map[uint]pages.Page),
		pageTemplates:  make(map[uint]templates.PageTemplate),
		blocks:         make(map[uint]templates.TemplateBlock),
		pageCategories: make(map[uint][]uint),
		Calls:          make(map[string]int),
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) hit(name string) {
	s.Calls[name]++
}

// Seeding helpers. They assign IDs when zero and return the stored row.

func (s *Store) AddPage(p pages.Page) pages.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.pagesByID[p.ID] = p
	return p
}

func (s *Store) AddTemplate(t templates.PageTemplate) templates.PageTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.id()
	}
	s.pageTemplates[t.ID] = t
	return t
}

func (s *Store) AddBlock(b templates.TemplateBlock) templates.TemplateBlock {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.id()
	}
	s.blocks[b.ID] = b
	return b
}

func (s *Store) AddTemplateBlock(tb templates.PageTemplateBlock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tb.ID == 0 {
		tb.ID = s.id()
	}
	s.templateBlocks = append(s.templateBlocks, tb)
}

func (s *Store) AddPageBlock(pb pages.PageBlock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pb.ID == 0 {
		pb.ID = s.id()
	}
	s.pageBlocks = append(s.pageBlocks, pb)
}

func (s *Store) AddRelated(rel pages.PageRelated) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rel.ID == 0 {
		rel.ID = s.id()
	}
	s.related = append(s.related, rel)
}

func (s *Store) AddCarousel(c pages.PageCarousel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.carousels = append(s.carousels, c)
}

func (s *Store) AddMenu(m pages.PageMenu) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		m.ID = s.id()
	}
	s.menus = append(s.menus, m)
}

func (s *Store) AddLink(l pages.PageLink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		l.ID = s.id()
	}
	s.links = append(s.links, l)
}

func (s *Store) AddPublication(p pages.PagePublication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.publications = append(s.publications, p)
}

func (s *Store) AddCategory(c pages.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.categories = append(s.categories, c)
}

// Relations returns a copy of every relation row.
func (s *Store) Relations() []pages.PageRelated {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pages.PageRelated(nil), s.related...)
}

// TemplateBlocks returns a copy of every template default row.
func (s *Store) TemplateBlocks() []templates.PageTemplateBlock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]templates.PageTemplateBlock(nil), s.templateBlocks...)
}

// Owned counts the carousel, menu, link, publication and category rows
// that still belong to pageID.
func (s *Store) Owned(pageID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.pageCategories[pageID])
	for _, r := range s.carousels {
		if r.PageID == pageID {
			n++
		}
	}
	for _, r := range s.menus {
		if r.PageID == pageID {
			n++
		}
	}
	for _, r := range s.links {
		if r.PageID == pageID {
			n++
		}
	}
	for _, r := range s.publications {
		if r.PageID == pageID {
			n++
		}
	}
	return n
}

// PageBlocks returns a copy of every page block row.
func (s *Store) PageBlocks() []pages.PageBlock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pages.PageBlock(nil), s.pageBlocks...)
}

// composition.BlockStore

func (s *Store) ActivePageBlocks(_ context.Context, pageID uint, section string) ([]composition.BlockAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("ActivePageBlocks")

	rows := make([]pages.PageBlock, 0)
	for _, pb := range s.pageBlocks {
		if pb.PageID != pageID || !pb.IsActive {
			continue
		}
		if section != "" && pb.Section != section {
			continue
		}
		rows = append(rows, pb)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Section != rows[j].Section {
			return rows[i].Section < rows[j].Section
		}
		return rows[i].Order < rows[j].Order
	})

	out := make([]composition.BlockAssignment, 0, len(rows))
	for _, pb := range rows {
		out = append(out, composition.BlockAssignment{Order: pb.Order, BlockID: pb.BlockID})
	}
	return out, nil
}

func (s *Store) InactivePageBlockIDs(_ context.Context, pageID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("InactivePageBlockIDs")

	var out []uint
	for _, pb := range s.pageBlocks {
		if pb.PageID == pageID && !pb.IsActive {
			out = append(out, pb.BlockID)
		}
	}
	return out, nil
}

func (s *Store) TemplateDefaultBlocks(_ context.Context, templateID uint, section string, exclude []uint) ([]composition.BlockAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("TemplateDefaultBlocks")

	skip := make(map[uint]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	rows := make([]templates.PageTemplateBlock, 0)
	for _, tb := range s.templateBlocks {
		if tb.TemplateID != templateID || !tb.IsActive {
			continue
		}
		if section != "" && tb.Section != section {
			continue
		}
		if _, ok := skip[tb.BlockID]; ok {
			continue
		}
		rows = append(rows, tb)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Section != rows[j].Section {
			return rows[i].Section < rows[j].Section
		}
		return rows[i].Order < rows[j].Order
	})

	out := make([]composition.BlockAssignment, 0, len(rows))
	for _, tb := range rows {
		out = append(out, composition.BlockAssignment{Order: tb.Order, BlockID: tb.BlockID})
	}
	return out, nil
}

func (s *Store) TemplateBlock(_ context.Context, id uint) (*templates.TemplateBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("TemplateBlock")

	b, ok := s.blocks[id]
	if !ok {
		return nil, fmt.Errorf("template block %d: %w", id, composition.ErrNotFound)
	}
	return &b, nil
}

// composition.AssociationStore

func (s *Store) ActiveCarousels(_ context.Context, pageID uint) ([]pages.PageCarousel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("ActiveCarousels")
	return activeOrdered(s.carousels, func(c pages.PageCarousel) (uint, bool, int, uint) {
		return c.PageID, c.IsActive, c.Order, c.ID
	}, pageID), nil
}

func (s *Store) ActiveMenus(_ context.Context, pageID uint) ([]pages.PageMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("ActiveMenus")
	return activeOrdered(s.menus, func(m pages.PageMenu) (uint, bool, int, uint) {
		return m.PageID, m.IsActive, m.Order, m.ID
	}, pageID), nil
}

func (s *Store) ActiveLinks(_ context.Context, pageID uint) ([]pages.PageLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("ActiveLinks")
	return activeOrdered(s.links, func(l pages.PageLink) (uint, bool, int, uint) {
		return l.PageID, l.IsActive, l.Order, l.ID
	}, pageID), nil
}

func (s *Store) ActivePublications(_ context.Context, pageID uint) ([]pages.PagePublication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("ActivePublications")
	return activeOrdered(s.publications, func(p pages.PagePublication) (uint, bool, int, uint) {
		return p.PageID, p.IsActive, p.Order, p.ID
	}, pageID), nil
}

// ActiveRelated orders unranked edges after ranked ones, like NULLS LAST.
func (s *Store) ActiveRelated(_ context.Context, pageID uint) ([]pages.PageRelated, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("ActiveRelated")

	out := make([]pages.PageRelated, 0)
	for _, r := range s.related {
		if r.PageID == pageID && r.IsActive {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Order, out[j].Order
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func activeOrdered[T any](rows []T, fields func(T) (pageID uint, active bool, order int, id uint), pageID uint) []T {
	out := make([]T, 0)
	for _, r := range rows {
		pid, active, _, _ := fields(r)
		if pid == pageID && active {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		_, _, oi, ii := fields(out[i])
		_, _, oj, ij := fields(out[j])
		if oi != oj {
			return oi < oj
		}
		return ii < ij
	})
	return out
}

// composition.RelationStore

func (s *Store) RelationsFrom(_ context.Context, pageID uint) ([]pages.PageRelated, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("RelationsFrom")

	var out []pages.PageRelated
	for _, r := range s.related {
		if r.PageID == pageID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) RelationExists(_ context.Context, pageID, relatedPageID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("RelationExists")
	return s.relationExists(pageID, relatedPageID), nil
}

func (s *Store) relationExists(pageID, relatedPageID uint) bool {
	for _, r := range s.related {
		if r.PageID == pageID && r.RelatedPageID == relatedPageID {
			return true
		}
	}
	return false
}

func (s *Store) InsertRelation(_ context.Context, rel *pages.PageRelated) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("InsertRelation")

	if s.relationExists(rel.PageID, rel.RelatedPageID) {
		return fmt.Errorf("relation %d -> %d: %w", rel.PageID, rel.RelatedPageID, composition.ErrConstraintViolation)
	}
	if _, ok := s.pagesByID[rel.PageID]; !ok {
		return fmt.Errorf("page %d: %w", rel.PageID, composition.ErrNotFound)
	}
	if _, ok := s.pagesByID[rel.RelatedPageID]; !ok {
		return fmt.Errorf("page %d: %w", rel.RelatedPageID, composition.ErrNotFound)
	}

	rel.ID = s.id()
	now := time.Now()
	rel.CreatedAt, rel.UpdatedAt = now, now
	s.related = append(s.related, *rel)
	return nil
}

func (s *Store) DeleteRelationsTo(_ context.Context, pageID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("DeleteRelationsTo")

	kept := s.related[:0]
	for _, r := range s.related {
		if r.RelatedPageID != pageID {
			kept = append(kept, r)
		}
	}
	s.related = kept
	return nil
}

// composition.PageStore

func (s *Store) Page(_ context.Context, id uint) (*pages.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("Page")

	p, ok := s.pagesByID[id]
	if !ok {
		return nil, fmt.Errorf("page %d: %w", id, composition.ErrNotFound)
	}
	return &p, nil
}

func (s *Store) SavePage(_ context.Context, p *pages.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pageTemplates[p.BaseTemplateID]; !ok {
		return fmt.Errorf("page template %d: %w", p.BaseTemplateID, composition.ErrNotFound)
	}

	now := time.Now()
	if p.ID == 0 {
		p.ID = s.id()
		p.CreatedAt = now
	} else if _, ok := s.pagesByID[p.ID]; !ok {
		return fmt.Errorf("page %d: %w", p.ID, composition.ErrNotFound)
	}
	p.UpdatedAt = now
	s.pagesByID[p.ID] = *p
	return nil
}

// DeletePage drops the page and the rows it owns. Inbound relations are
// refused unless Cascade is set.
func (s *Store) DeletePage(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pagesByID[id]; !ok {
		return fmt.Errorf("page %d: %w", id, composition.ErrNotFound)
	}

	if !s.Cascade {
		for _, r := range s.related {
			if r.RelatedPageID == id && r.PageID != id {
				return fmt.Errorf("page %d still referenced by page %d: %w", id, r.PageID, composition.ErrDanglingReference)
			}
		}
	}

	kept := s.related[:0]
	for _, r := range s.related {
		if r.PageID == id || r.RelatedPageID == id {
			continue
		}
		kept = append(kept, r)
	}
	s.related = kept

	blocks := s.pageBlocks[:0]
	for _, pb := range s.pageBlocks {
		if pb.PageID != id {
			blocks = append(blocks, pb)
		}
	}
	s.pageBlocks = blocks

	s.carousels = dropPage(s.carousels, id, func(r pages.PageCarousel) uint { return r.PageID })
	s.menus = dropPage(s.menus, id, func(r pages.PageMenu) uint { return r.PageID })
	s.links = dropPage(s.links, id, func(r pages.PageLink) uint { return r.PageID })
	s.publications = dropPage(s.publications, id, func(r pages.PagePublication) uint { return r.PageID })
	delete(s.pageCategories, id)

	delete(s.pagesByID, id)
	return nil
}

func dropPage[T any](rows []T, pageID uint, owner func(T) uint) []T {
	kept := rows[:0]
	for _, r := range rows {
		if owner(r) != pageID {
			kept = append(kept, r)
		}
	}
	return kept
}

func (s *Store) Drafts(_ context.Context, pageID uint) ([]pages.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]pages.Page, 0)
	for _, p := range s.pagesByID {
		if p.DraftOf != nil && *p.DraftOf == pageID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SavePageBlock(_ context.Context, pb *pages.PageBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.pageBlocks {
		if existing.PageID == pb.PageID && existing.BlockID == pb.BlockID {
			pb.ID = existing.ID
			s.pageBlocks[i] = *pb
			return nil
		}
	}
	pb.ID = s.id()
	s.pageBlocks = append(s.pageBlocks, *pb)
	return nil
}

func (s *Store) Categories(_ context.Context) ([]pages.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]pages.Category(nil), s.categories...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) PageCategories(_ context.Context, pageID uint) ([]pages.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("PageCategories")

	linked := make(map[uint]struct{}, len(s.pageCategories[pageID]))
	for _, id := range s.pageCategories[pageID] {
		linked[id] = struct{}{}
	}

	out := make([]pages.Category, 0, len(linked))
	for _, c := range s.categories {
		if _, ok := linked[c.ID]; ok {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SetPageCategories(_ context.Context, pageID uint, categoryIDs []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pagesByID[pageID]; !ok {
		return fmt.Errorf("page %d: %w", pageID, composition.ErrNotFound)
	}

	known := make(map[uint]struct{}, len(s.categories))
	for _, c := range s.categories {
		known[c.ID] = struct{}{}
	}
	seen := make(map[uint]struct{}, len(categoryIDs))
	ids := make([]uint, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("category %d: %w", id, composition.ErrNotFound)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	s.pageCategories[pageID] = ids
	return nil
}

// composition.TemplateStore

func (s *Store) PageTemplate(_ context.Context, id uint) (*templates.PageTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hit("PageTemplate")

	t, ok := s.pageTemplates[id]
	if !ok {
		return nil, fmt.Errorf("page template %d: %w", id, composition.ErrNotFound)
	}
	return &t, nil
}

func (s *Store) SavePageTemplate(_ context.Context, t *templates.PageTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if t.ID == 0 {
		// Seeded templates may carry explicit IDs; skip over them.
		for t.ID = s.id(); s.hasTemplate(t.ID); t.ID = s.id() {
		}
		t.CreatedAt = now
	} else if _, ok := s.pageTemplates[t.ID]; !ok {
		return fmt.Errorf("page template %d: %w", t.ID, composition.ErrNotFound)
	}
	t.UpdatedAt = now

	stored := *t
	stored.Blocks = nil
	s.pageTemplates[t.ID] = stored
	return nil
}

func (s *Store) hasTemplate(id uint) bool {
	_, ok := s.pageTemplates[id]
	return ok
}

func (s *Store) SavePageTemplateBlock(_ context.Context, tb *templates.PageTemplateBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pageTemplates[tb.TemplateID]; !ok {
		return fmt.Errorf("page template %d: %w", tb.TemplateID, composition.ErrNotFound)
	}
	if _, ok := s.blocks[tb.BlockID]; !ok {
		return fmt.Errorf("template block %d: %w", tb.BlockID, composition.ErrNotFound)
	}

	now := time.Now()
	if tb.ID == 0 {
		tb.ID = s.id()
		tb.CreatedAt, tb.UpdatedAt = now, now
		s.templateBlocks = append(s.templateBlocks, *tb)
		return nil
	}
	for i, existing := range s.templateBlocks {
		if existing.ID == tb.ID {
			tb.CreatedAt, tb.UpdatedAt = existing.CreatedAt, now
			s.templateBlocks[i] = *tb
			return nil
		}
	}
	return fmt.Errorf("page template block %d: %w", tb.ID, composition.ErrNotFound)
}

func (s *Store) SaveTemplateBlock(_ context.Context, b *templates.TemplateBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if b.ID == 0 {
		b.ID = s.id()
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	s.blocks[b.ID] = *b
	return nil
}

// Transaction runs fn directly against s. Nothing is rolled back on error.
func (s *Store) Transaction(ctx context.Context, fn func(tx composition.Store) error) error {
	return fn(s)
}

var _ composition.Store = (*Store)(nil)
