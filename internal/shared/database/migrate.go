package database

import (
	"fmt"

	"courtly/internal/catalog"
	"courtly/internal/reservations"

	"gorm.io/gorm"
)

// Migrate creates the extensions the schema relies on, migrates every model
// and then adds the constraints gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	for _, ext := range []string{`"uuid-ossp"`, "btree_gist"} {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS " + ext).Error; err != nil {
			return fmt.Errorf("failed to create extension %s: %w", ext, err)
		}
	}

	err := db.AutoMigrate(
		&catalog.Court{},
		&catalog.Coach{},
		&catalog.Equipment{},
		&catalog.PricingRule{},
		&reservations.Reservation{},
	)
	if err != nil {
		return err
	}

	return MigrateConstraints(db)
}
