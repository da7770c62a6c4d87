package database

import (
	"fmt"
	"log"
	"os"

	"cms-app/internal/domain/pages"
	"cms-app/internal/domain/templates"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate creates or updates every table. Order matters: referenced tables
// first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// templates
		&templates.TemplateBlock{},
		&templates.PageTemplate{},
		&templates.PageTemplateBlock{},

		// pages
		&pages.Category{},
		&pages.Page{},
		&pages.PageBlock{},
		&pages.PageRelated{},
		&pages.PageCarousel{},
		&pages.PageMenu{},
		&pages.PageLink{},
		&pages.PagePublication{},
	)
}
