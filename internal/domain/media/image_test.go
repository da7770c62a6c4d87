package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigPaths(t *testing.T) {
	c := Config{StaticURL: "/static", MediaURL: "/media"}
	assert.Equal(t, "/static/images/no-image.jpg", c.NoImageURL())
	assert.Equal(t, "/media/a.png", c.MediaPath("/a.png"))
	assert.Equal(t, "https://x/y.png", c.MediaPath("https://x/y.png"))

	assert.Equal(t, "images/no-image.jpg", Config{}.NoImageURL())
}
