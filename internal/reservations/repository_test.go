package reservations_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"courtly/internal/pricing"
	"courtly/internal/reservations"
	"courtly/internal/shared/apperrors"
	"courtly/internal/shared/config"
	"courtly/internal/shared/database"
	"courtly/internal/timeslot"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// openStore connects to the Postgres named by TEST_DATABASE_DSN and migrates
// it. Tests use fresh court ids so they do not interfere with each other.
func openStore(t *testing.T) reservations.Store {
	t.Helper()
	return reservations.NewRepository(openDB(t).GetPostgreSQL())
}

func openDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	cfg := config.Load()
	cfg.Database.DSN = dsn
	db, err := database.InitDB(cfg)
	if err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newReservation(courtID uuid.UUID, day time.Time, start, end string, status reservations.Status) *reservations.Reservation {
	w, _ := timeslot.ParseWindow(start, end)
	r := &reservations.Reservation{
		UserID:  uuid.New(),
		CourtID: courtID,
		Status:  status,
		Pricing: pricing.Placeholder(),
	}
	r.SetInterval(day, w)
	return r
}

func TestRepositoryInsertAndFind(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	courtID := uuid.New()
	racket := uuid.New()
	day := time.Date(2031, 5, 3, 0, 0, 0, 0, time.UTC)

	res := newReservation(courtID, day, "10:00", "11:00", reservations.StatusConfirmed)
	res.Equipment = reservations.EquipmentLines{{EquipmentID: racket, Quantity: 2}}
	err := store.WithLocks(ctx, res.ResourceKeys(), func(ctx context.Context, w reservations.Writer) error {
		return w.Insert(ctx, res)
	})
	if err != nil {
		t.Fatalf("insert error: %v", err)
	}

	byCourt, err := store.FindActiveByCourt(ctx, courtID, day.Add(15*time.Hour), nil)
	if err != nil || len(byCourt) != 1 {
		t.Fatalf("FindActiveByCourt() = %v, %v", byCourt, err)
	}
	byItem, err := store.FindActiveByEquipment(ctx, racket, day, nil)
	if err != nil || len(byItem) != 1 || byItem[0].Equipment.QuantityOf(racket) != 2 {
		t.Fatalf("FindActiveByEquipment() = %v, %v", byItem, err)
	}
	excluded, _ := store.FindActiveByCourt(ctx, courtID, day, &res.ID)
	if len(excluded) != 0 {
		t.Errorf("excluded reservation still returned: %v", excluded)
	}
}

func TestRepositoryRejectsOverlapAtConstraint(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	courtID := uuid.New()
	day := time.Date(2031, 5, 4, 0, 0, 0, 0, time.UTC)

	insert := func(start, end string) error {
		r := newReservation(courtID, day, start, end, reservations.StatusConfirmed)
		return store.WithLocks(ctx, r.ResourceKeys(), func(ctx context.Context, w reservations.Writer) error {
			return w.Insert(ctx, r)
		})
	}

	if err := insert("09:00", "10:00"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := insert("10:00", "11:00"); err != nil {
		t.Fatalf("touching insert should succeed: %v", err)
	}
	if err := insert("09:30", "10:30"); !errors.Is(err, apperrors.ErrAvailabilityConflict) {
		t.Errorf("overlapping insert error = %v, want availability conflict", err)
	}
}

func TestRepositoryRollbackOnError(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	courtID := uuid.New()
	day := time.Date(2031, 5, 5, 0, 0, 0, 0, time.UTC)

	boom := errors.New("pricing failed")
	r := newReservation(courtID, day, "12:00", "13:00", reservations.StatusConfirmed)
	err := store.WithLocks(ctx, r.ResourceKeys(), func(ctx context.Context, w reservations.Writer) error {
		if err := w.Insert(ctx, r); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithLocks() error = %v, want %v", err, boom)
	}

	found, _ := store.FindActiveByCourt(ctx, courtID, day, nil)
	if len(found) != 0 {
		t.Errorf("rolled back reservation is visible: %v", found)
	}
}

func TestRepositoryStatusTransitions(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	day := time.Date(2031, 5, 6, 0, 0, 0, 0, time.UTC)
	r := newReservation(uuid.New(), day, "14:00", "15:00", reservations.StatusConfirmed)
	store.WithLocks(ctx, r.ResourceKeys(), func(ctx context.Context, w reservations.Writer) error {
		return w.Insert(ctx, r)
	})

	// Two concurrent cancels: exactly one applies.
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = store.UpdateStatus(ctx, r.ID, reservations.Transition{
				From: reservations.StatusConfirmed, To: reservations.StatusCancelled, At: time.Now().UTC(),
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range results {
		if err == nil {
			okCount++
		} else if !errors.Is(err, reservations.ErrStatusChanged) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if okCount != 1 {
		t.Errorf("%d cancels applied, want 1", okCount)
	}

	got, err := store.GetByID(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != reservations.StatusCancelled || got.CancelledAt == nil {
		t.Errorf("reservation = %+v", got)
	}
}

func TestWithLocksReadsOnItsOwnTransaction(t *testing.T) {
	db := openDB(t)
	sqlDB, err := db.GetPostgreSQL().DB()
	if err != nil {
		t.Fatal(err)
	}
	// Fewer connections than callers: a read that left the transaction
	// would wait for a connection no caller ever gives back.
	sqlDB.SetMaxOpenConns(2)
	store := reservations.NewRepository(db.GetPostgreSQL())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	courtID := uuid.New()
	coachID := uuid.New()
	day := time.Date(2031, 5, 7, 0, 0, 0, 0, time.UTC)
	errTaken := errors.New("slot taken")

	const callers = 8
	results := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := newReservation(courtID, day, "18:00", "19:00", reservations.StatusConfirmed)
			r.CoachID = &coachID
			results[i] = store.WithLocks(ctx, r.ResourceKeys(), func(ctx context.Context, w reservations.Writer) error {
				var byCourt, byCoach []reservations.Reservation
				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() (err error) {
					byCourt, err = store.FindActiveByCourt(gctx, courtID, day, nil)
					return err
				})
				g.Go(func() (err error) {
					byCoach, err = store.FindActiveByCoach(gctx, coachID, day, nil)
					return err
				})
				if err := g.Wait(); err != nil {
					return err
				}
				if len(byCourt) > 0 || len(byCoach) > 0 {
					return errTaken
				}
				return w.Insert(ctx, r)
			})
		}(i)
	}
	wg.Wait()

	if ctx.Err() != nil {
		t.Fatalf("locked creates did not finish: %v", ctx.Err())
	}
	won := 0
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case !errors.Is(err, errTaken):
			t.Errorf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Errorf("%d inserts won, want 1", won)
	}
	found, _ := store.FindActiveByCourt(context.Background(), courtID, day, nil)
	if len(found) != 1 {
		t.Errorf("FindActiveByCourt() returned %d reservations, want 1", len(found))
	}
}
