// Package postgres implements composition.Store on gorm.
package postgres

import (
	"context"

	"cms-app/internal/composition"
	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

// New wraps db. Pass database.DB in; this package does not import it.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) Transaction(ctx context.Context, fn func(tx composition.Store) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) ActivePageBlocks(ctx context.Context, pageID uint, section string) ([]composition.BlockAssignment, error) {
	var rows []pages.PageBlock
	err := activePageBlocksQuery(s.conn(ctx), pageID, section).
		Select("sort_order", "block_id").
		Order("section ASC, sort_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list page blocks")
	}

	out := make([]composition.BlockAssignment, 0, len(rows))
	for _, r := range rows {
		out = append(out, composition.BlockAssignment{Order: r.Order, BlockID: r.BlockID})
	}
	return out, nil
}

func (s *Store) InactivePageBlockIDs(ctx context.Context, pageID uint) ([]uint, error) {
	var ids []uint
	err := s.conn(ctx).Model(&pages.PageBlock{}).
		Where("page_id = ? AND is_active = ?", pageID, false).
		Pluck("block_id", &ids).Error
	if err != nil {
		return nil, translate(err, "list excluded page blocks")
	}
	return ids, nil
}

func (s *Store) TemplateDefaultBlocks(ctx context.Context, templateID uint, section string, exclude []uint) ([]composition.BlockAssignment, error) {
	q := templateBlocksQuery(s.conn(ctx), templateID, section)
	if len(exclude) > 0 {
		q = q.Where("block_id NOT IN ?", exclude)
	}

	var rows []templates.PageTemplateBlock
	err := q.Select("sort_order", "block_id").
		Order("section ASC, sort_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list template blocks")
	}

	out := make([]composition.BlockAssignment, 0, len(rows))
	for _, r := range rows {
		out = append(out, composition.BlockAssignment{Order: r.Order, BlockID: r.BlockID})
	}
	return out, nil
}

func (s *Store) TemplateBlock(ctx context.Context, id uint) (*templates.TemplateBlock, error) {
	var b templates.TemplateBlock
	if err := s.conn(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err, "load template block")
	}
	return &b, nil
}

func (s *Store) SaveTemplateBlock(ctx context.Context, b *templates.TemplateBlock) error {
	if b.ID == 0 {
		return translateWrite(s.conn(ctx).Create(b).Error, "create template block")
	}
	return translateWrite(s.conn(ctx).Save(b).Error, "update template block")
}

func (s *Store) PageTemplate(ctx context.Context, id uint) (*templates.PageTemplate, error) {
	var t templates.PageTemplate
	if err := s.conn(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err, "load page template")
	}
	return &t, nil
}

// SavePageTemplate writes the template row only; defaults go through
// SavePageTemplateBlock.
func (s *Store) SavePageTemplate(ctx context.Context, t *templates.PageTemplate) error {
	db := s.conn(ctx).Omit(clause.Associations)
	if t.ID == 0 {
		return translateWrite(db.Create(t).Error, "create page template")
	}

	res := db.Model(t).Select("name", "note", "image", "is_active", "updated_at").Updates(t)
	if res.Error != nil {
		return translateWrite(res.Error, "update page template")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update page template")
	}
	return nil
}

func (s *Store) SavePageTemplateBlock(ctx context.Context, tb *templates.PageTemplateBlock) error {
	db := s.conn(ctx).Omit(clause.Associations)
	if tb.ID == 0 {
		return translateWrite(db.Create(tb).Error, "create page template block")
	}

	res := db.Model(tb).
		Select("template_id", "block_id", "section", "sort_order", "is_active", "updated_at").
		Updates(tb)
	if res.Error != nil {
		return translateWrite(res.Error, "update page template block")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "update page template block")
	}
	return nil
}

func (s *Store) ActiveCarousels(ctx context.Context, pageID uint) ([]pages.PageCarousel, error) {
	rows := make([]pages.PageCarousel, 0)
	if err := activeByPage(s.conn(ctx), &pages.PageCarousel{}, pageID).Find(&rows).Error; err != nil {
		return nil, translate(err, "list page carousels")
	}
	return rows, nil
}

func (s *Store) ActiveMenus(ctx context.Context, pageID uint) ([]pages.PageMenu, error) {
	rows := make([]pages.PageMenu, 0)
	if err := activeByPage(s.conn(ctx), &pages.PageMenu{}, pageID).Find(&rows).Error; err != nil {
		return nil, translate(err, "list page menus")
	}
	return rows, nil
}

func (s *Store) ActiveLinks(ctx context.Context, pageID uint) ([]pages.PageLink, error) {
	rows := make([]pages.PageLink, 0)
	if err := activeByPage(s.conn(ctx), &pages.PageLink{}, pageID).Find(&rows).Error; err != nil {
		return nil, translate(err, "list page links")
	}
	return rows, nil
}

func (s *Store) ActivePublications(ctx context.Context, pageID uint) ([]pages.PagePublication, error) {
	rows := make([]pages.PagePublication, 0)
	if err := activeByPage(s.conn(ctx), &pages.PagePublication{}, pageID).Find(&rows).Error; err != nil {
		return nil, translate(err, "list page publications")
	}
	return rows, nil
}

func (s *Store) ActiveRelated(ctx context.Context, pageID uint) ([]pages.PageRelated, error) {
	rows := make([]pages.PageRelated, 0)
	err := s.conn(ctx).Model(&pages.PageRelated{}).
		Where("page_id = ? AND is_active = ?", pageID, true).
		Order("sort_order ASC NULLS LAST, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list related pages")
	}
	return rows, nil
}

func (s *Store) RelationsFrom(ctx context.Context, pageID uint) ([]pages.PageRelated, error) {
	var rows []pages.PageRelated
	if err := s.conn(ctx).Where("page_id = ?", pageID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err, "list relations")
	}
	return rows, nil
}

func (s *Store) RelationExists(ctx context.Context, pageID, relatedPageID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&pages.PageRelated{}).
		Where("page_id = ? AND related_page_id = ?", pageID, relatedPageID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "check relation")
	}
	return count > 0, nil
}

// InsertRelation runs in its own (nested) transaction so a unique violation
// only rolls back to the savepoint and the caller can keep using the outer
// transaction.
func (s *Store) InsertRelation(ctx context.Context, rel *pages.PageRelated) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rel).Error
	})
	return translateWrite(err, "insert relation")
}

func (s *Store) DeleteRelationsTo(ctx context.Context, pageID uint) error {
	err := s.conn(ctx).Where("related_page_id = ?", pageID).Delete(&pages.PageRelated{}).Error
	return translate(err, "delete inbound relations")
}

func (s *Store) Page(ctx context.Context, id uint) (*pages.Page, error) {
	var p pages.Page
	if err := s.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, "load page")
	}
	return &p, nil
}

// SavePage writes the page columns only; associations are written through
// their own operations.
func (s *Store) SavePage(ctx context.Context, p *pages.Page) error {
	db := s.conn(ctx).Omit(clause.Associations)
	if p.ID == 0 {
		return translateWrite(db.Create(p).Error, "create page")
	}

	var existing pages.Page
	if err := s.conn(ctx).Select("id").First(&existing, "id = ?", p.ID).Error; err != nil {
		return translate(err, "update page")
	}
	return translateWrite(db.Save(p).Error, "update page")
}

func (s *Store) DeletePage(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&pages.Page{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete page")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete page")
	}
	return nil
}

func (s *Store) Drafts(ctx context.Context, pageID uint) ([]pages.Page, error) {
	rows := make([]pages.Page, 0)
	if err := s.conn(ctx).Where("draft_of = ?", pageID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err, "list drafts")
	}
	return rows, nil
}

func (s *Store) SavePageBlock(ctx context.Context, pb *pages.PageBlock) error {
	err := s.conn(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page_id"}, {Name: "block_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"section", "sort_order", "is_active"}),
	}).Create(pb).Error
	return translateWrite(err, "save page block")
}

func (s *Store) Categories(ctx context.Context) ([]pages.Category, error) {
	rows := make([]pages.Category, 0)
	if err := s.conn(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translate(err, "list categories")
	}
	return rows, nil
}

func (s *Store) PageCategories(ctx context.Context, pageID uint) ([]pages.Category, error) {
	rows := make([]pages.Category, 0)
	err := s.conn(ctx).
		Joins("JOIN page_categories ON page_categories.category_id = categories.id").
		Where("page_categories.page_id = ?", pageID).
		Order("categories.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list page categories")
	}
	return rows, nil
}

func (s *Store) SetPageCategories(ctx context.Context, pageID uint, categoryIDs []uint) error {
	ids := uniqueIDs(categoryIDs)

	cats := make([]pages.Category, 0, len(ids))
	if len(ids) > 0 {
		if err := s.conn(ctx).Where("id IN ?", ids).Find(&cats).Error; err != nil {
			return translate(err, "load categories")
		}
		if len(cats) != len(ids) {
			return translate(gorm.ErrRecordNotFound, "load categories")
		}
	}

	assoc := s.conn(ctx).Model(&pages.Page{ID: pageID}).Association("Categories")
	var err error
	if len(cats) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(cats)
	}
	return translateWrite(err, "set page categories")
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var _ composition.Store = (*Store)(nil)
