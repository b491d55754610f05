package db

import (
	"fmt"
	"log"

	"tuiter/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and migrates the schema. The returned handle is
// passed explicitly to services and handlers; there is no package-level
// instance. TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return gdb, nil
}

// Migrate runs the auto migration for all models.
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Tuit{},
		&models.PollOption{},
		&models.Vote{},
		&models.Like{},
		&models.Dislike{},
	)
	if err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
