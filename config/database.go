package config

import (
	"os"

	"linkstats/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

var DB *gorm.DB

// InitDB opens the SQLite database and auto migrates the schema.
// The path comes from DB_PATH so deployments can point at a volume.
func InitDB() error {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "linkstats.db"
	}
	return InitDBAt(path)
}

// InitDBAt opens the database at an explicit DSN. Tests pass an
// in-memory DSN so every test starts from a fresh schema.
func InitDBAt(dsn string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	// Auto migrate the schema
	return DB.AutoMigrate(&models.Profile{}, &models.Link{}, &models.DailyStat{})
}
