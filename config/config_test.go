package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/cms")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("STATIC_URL", "/assets")
	t.Setenv("MEDIA_URL", "/media/")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CMS_IMAGE_CATEGORY_SIZE", "64")

	LoadEnv()

	assert.Equal(t, "9090", PORT)
	assert.Equal(t, "postgres://localhost/cms", DB_URL)
	assert.Equal(t, "debug", LOG_LEVEL)

	m := Media()
	assert.Equal(t, "/assets", m.StaticURL)
	assert.Equal(t, "/media/", m.MediaURL)
	assert.Equal(t, 64, m.CategoryImageSize)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))

	t.Setenv("SOME_INT", "12")
	assert.Equal(t, 12, getEnvInt("SOME_INT", 7))

	assert.Equal(t, 3, getEnvInt("UNSET_INT_FOR_TEST", 3))
}

func TestMediaFallsBackToDefaultSize(t *testing.T) {
	CMS_IMAGE_CATEGORY_SIZE = 0
	assert.Equal(t, 128, Media().CategoryImageSize)
}
