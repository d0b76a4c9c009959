// Package catalogtest provides an in-memory catalog.Repository for tests.
package catalogtest

import (
	"context"
	"sort"
	"sync"

	"courtly/internal/catalog"
	"courtly/internal/shared/apperrors"

	"github.com/google/uuid"
)

type Memory struct {
	mu        sync.Mutex
	courts    map[uuid.UUID]catalog.Court
	coaches   map[uuid.UUID]catalog.Coach
	equipment map[uuid.UUID]catalog.Equipment
	rules     []catalog.PricingRule

	// Calls counts repository reads, keyed by method name.
	Calls map[string]int
}

var _ catalog.Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		courts:    map[uuid.UUID]catalog.Court{},
		coaches:   map[uuid.UUID]catalog.Coach{},
		equipment: map[uuid.UUID]catalog.Equipment{},
		Calls:     map[string]int{},
	}
}

// AddCourt stores c, assigning an id when it has none.
func (m *Memory) AddCourt(c catalog.Court) catalog.Court {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courts[c.ID] = c
	return c
}

func (m *Memory) AddCoach(c catalog.Coach) catalog.Coach {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coaches[c.ID] = c
	return c
}

func (m *Memory) AddEquipment(e catalog.Equipment) catalog.Equipment {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.equipment[e.ID] = e
	return e
}

func (m *Memory) AddRule(r catalog.PricingRule) catalog.PricingRule {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, r)
	return r
}

func (m *Memory) count(name string) {
	m.Calls[name]++
}

func (m *Memory) GetCourt(_ context.Context, id uuid.UUID) (*catalog.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetCourt")
	c, ok := m.courts[id]
	if !ok {
		return nil, apperrors.NotFound("court", id.String())
	}
	return &c, nil
}

func (m *Memory) GetCoach(_ context.Context, id uuid.UUID) (*catalog.Coach, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetCoach")
	c, ok := m.coaches[id]
	if !ok {
		return nil, apperrors.NotFound("coach", id.String())
	}
	return &c, nil
}

func (m *Memory) GetEquipment(_ context.Context, id uuid.UUID) (*catalog.Equipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("GetEquipment")
	e, ok := m.equipment[id]
	if !ok {
		return nil, apperrors.NotFound("equipment", id.String())
	}
	return &e, nil
}

func (m *Memory) ListCourts(_ context.Context, filter catalog.CourtFilter) ([]catalog.Court, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("ListCourts")
	var out []catalog.Court
	for _, c := range m.courts {
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if filter.ActiveOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) ListCoaches(_ context.Context, activeOnly bool) ([]catalog.Coach, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("ListCoaches")
	var out []catalog.Coach
	for _, c := range m.coaches {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) ListEquipment(_ context.Context, activeOnly bool) ([]catalog.Equipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("ListEquipment")
	var out []catalog.Equipment
	for _, e := range m.equipment {
		if activeOnly && !e.IsActive {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListActivePricingRules orders by priority descending, keeping insertion
// order among equal priorities.
func (m *Memory) ListActivePricingRules(_ context.Context) ([]catalog.PricingRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count("ListActivePricingRules")
	var out []catalog.PricingRule
	for _, r := range m.rules {
		if r.IsActive {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}

func (m *Memory) UpsertCourt(_ context.Context, c *catalog.Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.courts {
		if existing.Name == c.Name {
			c.ID = id
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.courts[c.ID] = *c
	return nil
}

func (m *Memory) UpsertCoach(_ context.Context, c *catalog.Coach) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.coaches {
		if existing.Name == c.Name {
			c.ID = id
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.coaches[c.ID] = *c
	return nil
}

func (m *Memory) UpsertEquipment(_ context.Context, e *catalog.Equipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.equipment {
		if existing.Name == e.Name {
			e.ID = id
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.equipment[e.ID] = *e
	return nil
}

func (m *Memory) UpsertPricingRule(_ context.Context, r *catalog.PricingRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.rules {
		if existing.Name == r.Name {
			r.ID = existing.ID
			m.rules[i] = *r
			return nil
		}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.rules = append(m.rules, *r)
	return nil
}
