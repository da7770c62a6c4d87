package pages

import (
	"fmt"
	"html"
	"time"

	"cms-app/internal/domain/media"
)

type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:160;not null" json:"name"`
	Description string  `gorm:"size:1024;not null" json:"description"`
	Image       *string `gorm:"size:512" json:"image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

// ImageHTML renders the category image as an <img> tag. Categories without an
// image get the static placeholder URL instead.
func (c Category) ImageHTML(cfg media.Config) string {
	if c.Image == nil || *c.Image == "" {
		return cfg.NoImageURL()
	}
	return fmt.Sprintf(`<img width=%d src="%s"/>`, cfg.CategoryImageSize, html.EscapeString(cfg.MediaPath(*c.Image)))
}
