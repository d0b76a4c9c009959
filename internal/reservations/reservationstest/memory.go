// Package reservationstest provides an in-memory reservations.Store. Lock
// scopes serialise on per-key mutexes and buffer writes until fn returns
// nil, mirroring the transactional store.
package reservationstest

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"courtly/internal/pricing"
	"courtly/internal/reservations"
	"courtly/internal/shared/apperrors"
	"courtly/internal/timeslot"

	"github.com/google/uuid"
)

type Memory struct {
	mu   sync.Mutex
	rows map[uuid.UUID]reservations.Reservation
	seq  int

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	// FailInsert, when set, is returned by every Insert.
	FailInsert error
}

var _ reservations.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		rows:  map[uuid.UUID]reservations.Reservation{},
		locks: map[string]*sync.Mutex{},
	}
}

// Put stores r directly, bypassing locks. Used to arrange fixtures.
func (m *Memory) Put(r reservations.Reservation) reservations.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(&r)
	return r
}

func (m *Memory) put(r *reservations.Reservation) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.seq++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Unix(int64(m.seq), 0).UTC()
	}
	r.Date = timeslot.Day(r.Date)
	if w, err := r.Window(); err == nil {
		r.StartMinute, r.EndMinute = w.Start, w.End
	}
	m.rows[r.ID] = *r
}

// All returns every stored reservation.
func (m *Memory) All() []reservations.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]reservations.Reservation, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	sortByCreated(out)
	return out
}

func sortByCreated(rs []reservations.Reservation) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].CreatedAt.Before(rs[j].CreatedAt) })
}

func (m *Memory) GetByID(_ context.Context, id uuid.UUID) (*reservations.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, apperrors.NotFound("reservation", id.String())
	}
	return &r, nil
}

func (m *Memory) findActive(day time.Time, excludeID *uuid.UUID, match func(reservations.Reservation) bool) []reservations.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []reservations.Reservation
	for _, r := range m.rows {
		if !r.Status.ConsumesCapacity() || !timeslot.SameDay(r.Date, day) {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartMinute < out[j].StartMinute })
	return out
}

func (m *Memory) FindActiveByCourt(_ context.Context, courtID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]reservations.Reservation, error) {
	return m.findActive(day, excludeID, func(r reservations.Reservation) bool { return r.CourtID == courtID }), nil
}

func (m *Memory) FindActiveByCoach(_ context.Context, coachID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]reservations.Reservation, error) {
	return m.findActive(day, excludeID, func(r reservations.Reservation) bool {
		return r.CoachID != nil && *r.CoachID == coachID
	}), nil
}

func (m *Memory) FindActiveByEquipment(_ context.Context, equipmentID uuid.UUID, day time.Time, excludeID *uuid.UUID) ([]reservations.Reservation, error) {
	return m.findActive(day, excludeID, func(r reservations.Reservation) bool {
		return slices.ContainsFunc(r.Equipment, func(l reservations.EquipmentLine) bool { return l.EquipmentID == equipmentID })
	}), nil
}

func (m *Memory) waitlisted(slot reservations.SlotQuery) []reservations.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []reservations.Reservation
	for _, r := range m.rows {
		if r.Status != reservations.StatusWaitlist || r.CourtID != slot.CourtID || !timeslot.SameDay(r.Date, slot.Date) {
			continue
		}
		if slot.StartTime != "" && r.StartTime != slot.StartTime {
			continue
		}
		if slot.EndTime != "" && r.EndTime != slot.EndTime {
			continue
		}
		out = append(out, r)
	}
	sortByCreated(out)
	sort.SliceStable(out, func(i, j int) bool { return position(out[i]) < position(out[j]) })
	return out
}

func position(r reservations.Reservation) int {
	if r.WaitlistPosition == nil {
		return 0
	}
	return *r.WaitlistPosition
}

func (m *Memory) CountWaitlistedForSlot(_ context.Context, slot reservations.SlotQuery) (int64, error) {
	return int64(len(m.waitlisted(slot))), nil
}

func (m *Memory) FindWaitlisted(_ context.Context, slot reservations.SlotQuery) ([]reservations.Reservation, error) {
	return m.waitlisted(slot), nil
}

func (m *Memory) List(_ context.Context, f reservations.ListFilter) ([]reservations.Reservation, int64, error) {
	m.mu.Lock()
	var out []reservations.Reservation
	for _, r := range m.rows {
		if f.UserID != nil && r.UserID != *f.UserID {
			continue
		}
		if f.CourtID != nil && r.CourtID != *f.CourtID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Date != nil && !timeslot.SameDay(r.Date, *f.Date) {
			continue
		}
		out = append(out, r)
	}
	m.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if out[i].StartMinute != out[j].StartMinute {
			return out[i].StartMinute > out[j].StartMinute
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	total := int64(len(out))
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			out = nil
		} else {
			out = out[f.Offset:]
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (m *Memory) UpdateStatus(_ context.Context, id uuid.UUID, t reservations.Transition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.Status != t.From {
		return reservations.ErrStatusChanged
	}
	r.Status = t.To
	r.UpdatedAt = t.At
	switch t.To {
	case reservations.StatusCancelled:
		at := t.At
		r.CancelledAt = &at
		r.CancelledBy = t.By
	case reservations.StatusCompleted:
		at := t.At
		r.CompletedAt = &at
	}
	m.rows[id] = r
	return nil
}

func (m *Memory) MarkNotified(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.Status != reservations.StatusWaitlist || r.NotifiedAt != nil {
		return false, nil
	}
	r.NotifiedAt = &at
	r.UpdatedAt = at
	m.rows[id] = r
	return true, nil
}

func (m *Memory) lockFor(key string) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

func (m *Memory) WithLocks(ctx context.Context, keys []string, fn func(ctx context.Context, w reservations.Writer) error) error {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	for _, k := range sorted {
		l := m.lockFor(k)
		l.Lock()
		defer l.Unlock()
	}

	w := &stagedWriter{m: m}
	if err := fn(ctx, w); err != nil {
		return err
	}
	return w.commit()
}

type stagedWriter struct {
	m   *Memory
	ops []func() error
}

func (w *stagedWriter) Insert(_ context.Context, r *reservations.Reservation) error {
	if w.m.FailInsert != nil {
		return w.m.FailInsert
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	row := *r
	w.ops = append(w.ops, func() error {
		w.m.put(&row)
		return nil
	})
	return nil
}

func (w *stagedWriter) Promote(_ context.Context, id uuid.UUID, price pricing.Breakdown, at time.Time) error {
	w.ops = append(w.ops, func() error {
		r, ok := w.m.rows[id]
		if !ok || r.Status != reservations.StatusWaitlist {
			return reservations.ErrStatusChanged
		}
		r.Status = reservations.StatusConfirmed
		r.Pricing = price
		r.PromotedAt = &at
		r.UpdatedAt = at
		w.m.rows[id] = r
		return nil
	})
	return nil
}

// commit applies staged writes atomically; the first failing op discards
// the rest.
func (w *stagedWriter) commit() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	snapshot := make(map[uuid.UUID]reservations.Reservation, len(w.m.rows))
	for k, v := range w.m.rows {
		snapshot[k] = v
	}
	for _, op := range w.ops {
		if err := op(); err != nil {
			w.m.rows = snapshot
			return err
		}
	}
	return nil
}

// ErrInjected is a convenience error for FailInsert.
var ErrInjected = errors.New("injected failure")
