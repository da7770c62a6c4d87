package config

import (
	"log"
	"os"
	"strconv"

	"cms-app/internal/domain/media"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	CORS_ORIGIN string
	LOG_LEVEL   string

	STATIC_URL              string
	MEDIA_URL               string
	CMS_IMAGE_CATEGORY_SIZE int
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")

	STATIC_URL = getEnv("STATIC_URL", "/static/")
	MEDIA_URL = getEnv("MEDIA_URL", "/media/")
	CMS_IMAGE_CATEGORY_SIZE = getEnvInt("CMS_IMAGE_CATEGORY_SIZE", media.DefaultCategoryImageSize)
}

// Media returns the media settings as one value for the components that
// render media URLs.
func Media() media.Config {
	size := CMS_IMAGE_CATEGORY_SIZE
	if size <= 0 {
		size = media.DefaultCategoryImageSize
	}
	return media.Config{
		StaticURL:         STATIC_URL,
		MediaURL:          MEDIA_URL,
		CategoryImageSize: size,
	}
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid integer for %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
