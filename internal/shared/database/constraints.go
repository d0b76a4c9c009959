package database

import (
	"fmt"

	"gorm.io/gorm"
)

// exclusionConstraints back the lock-scoped availability check: even a write
// that skipped the check cannot double-book a court or coach.
var exclusionConstraints = map[string]string{
	"reservations_court_no_overlap": `
		ALTER TABLE reservations
		ADD CONSTRAINT reservations_court_no_overlap
		EXCLUDE USING gist (
			court_id WITH =,
			date WITH =,
			int4range(start_minute, end_minute) WITH &&
		) WHERE (status IN ('confirmed', 'pending'))`,
	"reservations_coach_no_overlap": `
		ALTER TABLE reservations
		ADD CONSTRAINT reservations_coach_no_overlap
		EXCLUDE USING gist (
			coach_id WITH =,
			date WITH =,
			int4range(start_minute, end_minute) WITH &&
		) WHERE (coach_id IS NOT NULL AND status IN ('confirmed', 'pending'))`,
}

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	for name, ddl := range exclusionConstraints {
		var exists bool
		err := db.Raw("SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)", name).Scan(&exists).Error
		if err != nil {
			return fmt.Errorf("failed to inspect constraint %s: %w", name, err)
		}
		if exists {
			continue
		}
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("failed to add constraint %s: %w", name, err)
		}
	}

	// Containment lookups of equipment lines
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_equipment
		ON reservations USING gin (equipment jsonb_path_ops);
	`).Error
	if err != nil {
		return err
	}

	// Waitlist queue lookups by exact slot
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_waitlist_slot
		ON reservations (court_id, date, start_time, end_time, waitlist_position)
		WHERE status = 'waitlist';
	`).Error
	if err != nil {
		return err
	}

	return nil
}
