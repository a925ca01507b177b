// Package testutil opens throwaway SQLite databases carrying the full schema.
package testutil

import (
	bidDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/bid"
	clientDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/client"
	inventoryDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/inventory"
	projectDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/project"
	userDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns an in-memory database pinned to one connection so every
// query sees the same schema.
func OpenDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&userDatamodel.User{},
		&clientDatamodel.Client{},
		&projectDatamodel.Project{},
		&bidDatamodel.Bid{},
		&inventoryDatamodel.Item{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
