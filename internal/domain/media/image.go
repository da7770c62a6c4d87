package media

import "strings"

const DefaultCategoryImageSize = 128

// Config carries the media settings that used to be global overridable
// constants. Build it once from config and pass it where needed.
type Config struct {
	StaticURL         string
	MediaURL          string
	CategoryImageSize int
}

func (c Config) NoImageURL() string {
	return withSlash(c.StaticURL) + "images/no-image.jpg"
}

// MediaPath resolves a stored file name against MediaURL. Absolute URLs are
// returned as they are.
func (c Config) MediaPath(name string) string {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return withSlash(c.MediaURL) + strings.TrimPrefix(name, "/")
}

func withSlash(s string) string {
	if s == "" || strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
