package pages

import (
	"time"

	"cms-app/internal/domain/templates"
)

const (
	StateDraft     = "draft"
	StatePublished = "published"
)

const (
	TypeStandard = "standard"
	TypeHome     = "home"
)

type Page struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:160;not null" json:"name"`
	Title       string `gorm:"size:256;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Type        string `gorm:"size:33;not null;default:'standard'" json:"type"`
	State       string `gorm:"size:33;not null;default:'draft'" json:"state"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`

	DateStart time.Time  `gorm:"not null" json:"date_start"`
	DateEnd   *time.Time `json:"date_end,omitempty"`

	BaseTemplateID uint                    `gorm:"not null;index" json:"base_template_id"`
	BaseTemplate   *templates.PageTemplate `gorm:"foreignKey:BaseTemplateID;constraint:OnDelete:CASCADE;" json:"-"`

	// DraftOf points at the published page this row is a draft of. It is a
	// plain integer, not a foreign key.
	DraftOf *uint `gorm:"index" json:"draft_of,omitempty"`

	Categories []Category `gorm:"many2many:page_categories;constraint:OnDelete:CASCADE;" json:"categories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageBlock overrides a template default for one page. An inactive row
// suppresses the block on that page whatever the template says. A block sits
// in at most one section of a page.
type PageBlock struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PageID   uint   `gorm:"not null;index:idx_page_blocks_sort,priority:1;uniqueIndex:idx_page_blocks_pair,priority:1" json:"page_id"`
	BlockID  uint   `gorm:"not null;index;uniqueIndex:idx_page_blocks_pair,priority:2" json:"block_id"`
	Section  string `gorm:"not null;default:'';index:idx_page_blocks_sort,priority:2" json:"section"`
	Order    int    `gorm:"column:sort_order;not null;default:0;index:idx_page_blocks_sort,priority:3" json:"order"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	Page  *Page                    `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`
	Block *templates.TemplateBlock `gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE;" json:"-"`
}

// PageRelated is a directed edge page -> related page. The store must keep
// (page_id, related_page_id) unique.
type PageRelated struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	PageID        uint `gorm:"not null;uniqueIndex:idx_page_related_pair,priority:1" json:"page_id"`
	RelatedPageID uint `gorm:"not null;uniqueIndex:idx_page_related_pair,priority:2;index" json:"related_page_id"`
	Order         *int `gorm:"column:sort_order" json:"order,omitempty"`
	IsActive      bool `gorm:"not null;default:true" json:"is_active"`

	Page        *Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`
	RelatedPage *Page `gorm:"foreignKey:RelatedPageID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PageCarousel struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PageID     uint   `gorm:"not null;index" json:"page_id"`
	CarouselID uint   `gorm:"not null;index" json:"carousel_id"`
	Section    string `gorm:"not null;default:''" json:"section,omitempty"`
	Order      int    `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`

	Page *Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PageMenu struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PageID   uint   `gorm:"not null;index" json:"page_id"`
	MenuID   uint   `gorm:"not null;index" json:"menu_id"`
	Section  string `gorm:"not null;default:''" json:"section,omitempty"`
	Order    int    `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	Page *Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PageLink struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PageID   uint   `gorm:"not null;index" json:"page_id"`
	Name     string `gorm:"size:256;not null" json:"name"`
	URL      string `gorm:"not null" json:"url"`
	Order    int    `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	Page *Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PagePublication struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	PageID        uint `gorm:"not null;index" json:"page_id"`
	PublicationID uint `gorm:"not null;index" json:"publication_id"`
	Order         int  `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsActive      bool `gorm:"not null;default:true" json:"is_active"`

	Page *Page `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Page) TableName() string            { return "pages" }
func (PageBlock) TableName() string       { return "page_blocks" }
func (PageRelated) TableName() string     { return "page_related" }
func (PageCarousel) TableName() string    { return "page_carousels" }
func (PageMenu) TableName() string        { return "page_menus" }
func (PageLink) TableName() string        { return "page_links" }
func (PagePublication) TableName() string { return "page_publications" }
