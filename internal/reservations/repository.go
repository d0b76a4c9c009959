package reservations

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"courtly/internal/pricing"
	"courtly/internal/shared/apperrors"
	"courtly/internal/shared/database/dbtx"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrStatusChanged is returned by conditional updates when the row is no
// longer in the expected status.
var ErrStatusChanged = errors.New("reservation status changed concurrently")

// Reader is the read side of the reservation store.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	// FindActiveBy* return confirmed and pending reservations on the calendar
	// day of day. excludeID, when set, is left out.
	FindActiveByCourt(ctx context.Context, courtID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]Reservation, error)
	FindActiveByCoach(ctx context.Context, coachID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]Reservation, error)
	FindActiveByEquipment(ctx context.Context, equipmentID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]Reservation, error)
	// CountWaitlistedForSlot counts waitlist entries for the exact slot.
	CountWaitlistedForSlot(ctx context.Context, slot SlotQuery) (int64, error)
	// FindWaitlisted lists waitlist entries of a court and day, by position.
	// Empty StartTime and EndTime match every slot of the day.
	FindWaitlisted(ctx context.Context, slot SlotQuery) ([]Reservation, error)
	List(ctx context.Context, filter ListFilter) ([]Reservation, int64, error)
}

// Writer performs writes inside a locked transaction.
type Writer interface {
	Insert(ctx context.Context, r *Reservation) error
	// Promote flips a waitlist entry to confirmed with a fresh price.
	Promote(ctx context.Context, id uuid.UUID, price pricing.Breakdown, at time.Time) error
}

// Store is the reservation store used by the booking orchestrator.
type Store interface {
	Reader
	// UpdateStatus applies t only if the row is still in t.From.
	UpdateStatus(ctx context.Context, id uuid.UUID, t Transition) error
	// MarkNotified stamps notified_at if it is not set yet. It reports
	// whether the row was stamped.
	MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	// WithLocks runs fn in one transaction after taking an exclusive lock
	// on every key. Keys are locked in sorted order. Reads made with the
	// ctx handed to fn run on the same transaction. Any error from fn
	// rolls back every write made through the Writer.
	WithLocks(ctx context.Context, keys []string, fn func(ctx context.Context, w Writer) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Store {
	return &repository{db: db}
}

func dayRange(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func activeOnDay(db *gorm.DB, day time.Time, excludeID *uuid.UUID) *gorm.DB {
	from, to := dayRange(day)
	db = db.
		Where("date >= ? AND date < ?", from, to).
		Where("status IN ?", ActiveStatuses)
	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}
	return db
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var res Reservation
	if err := conn.Where("id = ?", id).First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("reservation", id.String())
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}
	return &res, nil
}

func (r *repository) FindActiveByCourt(ctx context.Context, courtID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]Reservation, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var out []Reservation
	err := activeOnDay(conn, day, excludeID).
		Where("court_id = ?", courtID).
		Order("start_minute ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load court reservations: %w", err)
	}
	return out, nil
}

func (r *repository) FindActiveByCoach(ctx context.Context, coachID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]Reservation, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var out []Reservation
	err := activeOnDay(conn, day, excludeID).
		Where("coach_id = ?", coachID).
		Order("start_minute ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load coach reservations: %w", err)
	}
	return out, nil
}

func (r *repository) FindActiveByEquipment(ctx context.Context, equipmentID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]Reservation, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var out []Reservation
	contains := fmt.Sprintf(`[{"equipment_id":%q}]`, equipmentID.String())
	err := activeOnDay(conn, day, excludeID).
		Where("equipment @> ?::jsonb", contains).
		Order("start_minute ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load equipment reservations: %w", err)
	}
	return out, nil
}

func waitlisted(db *gorm.DB, slot SlotQuery) *gorm.DB {
	from, to := dayRange(slot.Date)
	db = db.Model(&Reservation{}).
		Where("court_id = ?", slot.CourtID).
		Where("date >= ? AND date < ?", from, to).
		Where("status = ?", StatusWaitlist)
	if slot.StartTime != "" {
		db = db.Where("start_time = ?", slot.StartTime)
	}
	if slot.EndTime != "" {
		db = db.Where("end_time = ?", slot.EndTime)
	}
	return db
}

func (r *repository) CountWaitlistedForSlot(ctx context.Context, slot SlotQuery) (int64, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var count int64
	if err := waitlisted(conn, slot).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count waitlist: %w", err)
	}
	return count, nil
}

func (r *repository) FindWaitlisted(ctx context.Context, slot SlotQuery) ([]Reservation, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var out []Reservation
	err := waitlisted(conn, slot).
		Order("waitlist_position ASC").
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load waitlist: %w", err)
	}
	return out, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Reservation, int64, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	db := conn.Model(&Reservation{})
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.CourtID != nil {
		db = db.Where("court_id = ?", *filter.CourtID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		from, to := dayRange(*filter.Date)
		db = db.Where("date >= ? AND date < ?", from, to)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	var out []Reservation
	err := db.Order("date DESC").Order("start_minute DESC").Order("created_at DESC").Find(&out).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	return out, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, t Transition) error {
	updates := map[string]interface{}{
		"status":     t.To,
		"updated_at": t.At,
	}
	switch t.To {
	case StatusCancelled:
		updates["cancelled_at"] = t.At
		updates["cancelled_by"] = t.By
	case StatusCompleted:
		updates["completed_at"] = t.At
	}

	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	result := conn.Model(&Reservation{}).
		Where("id = ? AND status = ?", id, t.From).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update reservation status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *repository) MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	result := conn.Model(&Reservation{}).
		Where("id = ? AND status = ? AND notified_at IS NULL", id, StatusWaitlist).
		Updates(map[string]interface{}{"notified_at": at, "updated_at": at})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark waitlist entry notified: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) WithLocks(ctx context.Context, keys []string, fn func(ctx context.Context, w Writer) error) error {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range sorted {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
				return fmt.Errorf("failed to lock %s: %w", key, err)
			}
		}
		return fn(dbtx.WithTx(ctx, tx), &txWriter{tx: tx})
	})
}

type txWriter struct {
	tx *gorm.DB
}

func (w *txWriter) Insert(ctx context.Context, res *Reservation) error {
	conn, release := dbtx.Conn(ctx, w.tx)
	defer release()

	if err := conn.Create(res).Error; err != nil {
		if isExclusionViolation(err) {
			return apperrors.Wrap(apperrors.KindAvailabilityConflict, err, "reservation overlaps an existing booking")
		}
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (w *txWriter) Promote(ctx context.Context, id uuid.UUID, price pricing.Breakdown, at time.Time) error {
	conn, release := dbtx.Conn(ctx, w.tx)
	defer release()

	result := conn.Model(&Reservation{}).
		Where("id = ? AND status = ?", id, StatusWaitlist).
		Updates(map[string]interface{}{
			"status":      StatusConfirmed,
			"pricing":     price,
			"promoted_at": at,
			"updated_at":  at,
		})
	if result.Error != nil {
		if isExclusionViolation(result.Error) {
			return apperrors.Wrap(apperrors.KindAvailabilityConflict, result.Error, "promotion overlaps an existing booking")
		}
		return fmt.Errorf("failed to promote waitlist entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// isExclusionViolation matches SQLSTATE 23P01 raised by the no-overlap
// constraints on reservations.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}
