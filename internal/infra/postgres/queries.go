package postgres

import (
	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"

	"gorm.io/gorm"
)

func activePageBlocksQuery(db *gorm.DB, pageID uint, section string) *gorm.DB {
	q := db.Model(&pages.PageBlock{}).
		Where("page_id = ? AND is_active = ?", pageID, true)
	if section != "" {
		q = q.Where("section = ?", section)
	}
	return q
}

func templateBlocksQuery(db *gorm.DB, templateID uint, section string) *gorm.DB {
	q := db.Model(&templates.PageTemplateBlock{}).
		Where("template_id = ? AND is_active = ?", templateID, true)
	if section != "" {
		q = q.Where("section = ?", section)
	}
	return q
}

func activeByPage(db *gorm.DB, model any, pageID uint) *gorm.DB {
	return db.Model(model).
		Where("page_id = ? AND is_active = ?", pageID, true).
		Order("sort_order ASC, id ASC")
}
