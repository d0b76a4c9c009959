package catalog

import (
	"context"
	"errors"
	"fmt"

	"courtly/internal/shared/apperrors"
	"courtly/internal/shared/database/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetCourt(ctx context.Context, id uuid.UUID) (*Court, error)
	GetCoach(ctx context.Context, id uuid.UUID) (*Coach, error)
	GetEquipment(ctx context.Context, id uuid.UUID) (*Equipment, error)
	ListCourts(ctx context.Context, filter CourtFilter) ([]Court, error)
	ListCoaches(ctx context.Context, activeOnly bool) ([]Coach, error)
	ListEquipment(ctx context.Context, activeOnly bool) ([]Equipment, error)
	// ListActivePricingRules returns active rules, highest priority first.
	// Ties are broken by creation time then id so the order is stable.
	ListActivePricingRules(ctx context.Context) ([]PricingRule, error)

	// Upsert* insert or update by unique name. Used by the seeder.
	UpsertCourt(ctx context.Context, court *Court) error
	UpsertCoach(ctx context.Context, coach *Coach) error
	UpsertEquipment(ctx context.Context, item *Equipment) error
	UpsertPricingRule(ctx context.Context, rule *PricingRule) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCourt(ctx context.Context, id uuid.UUID) (*Court, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var court Court
	if err := conn.Where("id = ?", id).First(&court).Error; err != nil {
		return nil, lookupError("court", id, err)
	}
	return &court, nil
}

func (r *repository) GetCoach(ctx context.Context, id uuid.UUID) (*Coach, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var coach Coach
	if err := conn.Where("id = ?", id).First(&coach).Error; err != nil {
		return nil, lookupError("coach", id, err)
	}
	return &coach, nil
}

func (r *repository) GetEquipment(ctx context.Context, id uuid.UUID) (*Equipment, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var item Equipment
	if err := conn.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, lookupError("equipment", id, err)
	}
	return &item, nil
}

func (r *repository) ListCourts(ctx context.Context, filter CourtFilter) ([]Court, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var courts []Court
	db := conn.Model(&Court{})
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	if err := db.Order("name ASC").Find(&courts).Error; err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	return courts, nil
}

func (r *repository) ListCoaches(ctx context.Context, activeOnly bool) ([]Coach, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var coaches []Coach
	db := conn.Model(&Coach{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	if err := db.Order("name ASC").Find(&coaches).Error; err != nil {
		return nil, fmt.Errorf("failed to list coaches: %w", err)
	}
	return coaches, nil
}

func (r *repository) ListEquipment(ctx context.Context, activeOnly bool) ([]Equipment, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var items []Equipment
	db := conn.Model(&Equipment{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	if err := db.Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, nil
}

func (r *repository) ListActivePricingRules(ctx context.Context) ([]PricingRule, error) {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	var rules []PricingRule
	err := conn.
		Where("is_active = ?", true).
		Order("priority DESC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing rules: %w", err)
	}
	return rules, nil
}

func (r *repository) UpsertCourt(ctx context.Context, court *Court) error {
	return r.upsert(ctx, court, "type", "description", "base_price", "is_active")
}

func (r *repository) UpsertCoach(ctx context.Context, coach *Coach) error {
	return r.upsert(ctx, coach, "email", "specialization", "bio", "hourly_rate", "availability", "is_active")
}

func (r *repository) UpsertEquipment(ctx context.Context, item *Equipment) error {
	return r.upsert(ctx, item, "type", "description", "hourly_rate", "total_quantity", "is_active")
}

func (r *repository) UpsertPricingRule(ctx context.Context, rule *PricingRule) error {
	return r.upsert(ctx, rule, "description", "type", "start_time", "end_time", "days_of_week",
		"specific_dates", "modifier_type", "modifier_value", "applies_to", "priority", "is_active")
}

func (r *repository) upsert(ctx context.Context, value interface{}, columns ...string) error {
	conn, release := dbtx.Conn(ctx, r.db)
	defer release()

	err := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}).Create(value).Error
	if err != nil {
		return fmt.Errorf("failed to upsert catalog entry: %w", err)
	}
	return nil
}

func lookupError(resource string, id uuid.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(resource, id.String())
	}
	return fmt.Errorf("failed to load %s %s: %w", resource, id, err)
}
