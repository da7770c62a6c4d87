package pages

import (
	"testing"

	"cms-app/internal/domain/media"

	"github.com/stretchr/testify/assert"
)

func TestCategoryImageHTML(t *testing.T) {
	cfg := media.Config{StaticURL: "/static", MediaURL: "/media/", CategoryImageSize: 64}

	img := "images/categories/news.png"
	c := Category{Name: "News", Image: &img}
	assert.Equal(t, `<img width=64 src="/media/images/categories/news.png"/>`, c.ImageHTML(cfg))

	assert.Equal(t, "/static/images/no-image.jpg", Category{Name: "Empty"}.ImageHTML(cfg))

	blank := ""
	assert.Equal(t, "/static/images/no-image.jpg", Category{Image: &blank}.ImageHTML(cfg))
}

func TestCategoryImageHTMLEscapes(t *testing.T) {
	cfg := media.Config{MediaURL: "https://cdn.example.com/", CategoryImageSize: 32}
	img := `https://cdn.example.com/a"b.png`
	assert.Equal(t, `<img width=32 src="https://cdn.example.com/a&#34;b.png"/>`, Category{Image: &img}.ImageHTML(cfg))
}
