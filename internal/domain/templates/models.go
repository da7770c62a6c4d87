package templates

import (
	"time"
)

// TemplateBlock is a reusable block definition. Pages and templates reference
// it through assignment rows; they never own it.
type TemplateBlock struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Type     BlockType `gorm:"type:text;not null;index" json:"type"`
	Content  string    `gorm:"type:text;not null;default:''" json:"content"`
	Image    *string   `gorm:"size:512" json:"image,omitempty"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PageTemplate struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Note     string  `gorm:"type:text" json:"note,omitempty"`
	Image    *string `gorm:"size:512" json:"image,omitempty"`
	IsActive bool    `gorm:"not null;default:true" json:"is_active"`

	Blocks []PageTemplateBlock `gorm:"foreignKey:TemplateID;references:ID;constraint:OnDelete:CASCADE;" json:"blocks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageTemplateBlock is a template default: the block is placed in Section at
// Order unless the page overrides or excludes it.
type PageTemplateBlock struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TemplateID uint   `gorm:"not null;index:idx_template_blocks_sort,priority:1" json:"template_id"`
	BlockID    uint   `gorm:"not null;index" json:"block_id"`
	Section    string `gorm:"not null;default:'';index:idx_template_blocks_sort,priority:2" json:"section"`
	Order      int    `gorm:"column:sort_order;not null;default:0;index:idx_template_blocks_sort,priority:3" json:"order"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`

	Block *TemplateBlock `gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE;" json:"block,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TemplateBlock) TableName() string     { return "template_blocks" }
func (PageTemplate) TableName() string      { return "page_templates" }
func (PageTemplateBlock) TableName() string { return "page_template_blocks" }
