package catalog

import (
	"context"
	"fmt"
	"time"

	"courtly/internal/shared/constants"
	"courtly/pkg/cache"
	"courtly/pkg/logger"

	"github.com/google/uuid"
)

// Service is the read side of the catalog used by availability, pricing and
// the booking orchestrator. Lookups go through Redis when a cache is set.
type Service interface {
	SetCacheService(cacheService cache.Service, ttl time.Duration)
	GetCourt(ctx context.Context, id uuid.UUID) (*Court, error)
	GetCoach(ctx context.Context, id uuid.UUID) (*Coach, error)
	GetEquipment(ctx context.Context, id uuid.UUID) (*Equipment, error)
	ListCourts(ctx context.Context, filter CourtFilter) ([]Court, error)
	ListCoaches(ctx context.Context) ([]Coach, error)
	ListEquipment(ctx context.Context) ([]Equipment, error)
	ListActivePricingRules(ctx context.Context) ([]PricingRule, error)
	InvalidateCache(ctx context.Context) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cacheTTL     time.Duration
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

// SetCacheService injects the cache. A zero ttl keeps the per-key defaults.
func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cacheService = cacheService
	s.cacheTTL = ttl
}

func (s *service) ttl(fallback time.Duration) time.Duration {
	if s.cacheTTL > 0 {
		return s.cacheTTL
	}
	return fallback
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cacheService == nil {
		return false
	}
	return s.cacheService.Get(ctx, key, dest) == nil
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Set(ctx, key, value, s.ttl(ttl)); err != nil {
		s.log.WarnContext(ctx, "catalog cache set failed", "key", key, "error", err)
	}
}

func (s *service) GetCourt(ctx context.Context, id uuid.UUID) (*Court, error) {
	key := constants.BuildCourtDetailKey(id.String())
	var cached Court
	if s.getCache(ctx, key, &cached) {
		return &cached, nil
	}

	court, err := s.repo.GetCourt(ctx, id)
	if err != nil {
		return nil, err
	}
	s.setCache(ctx, key, court, constants.TTL_CATALOG_DETAIL)
	return court, nil
}

func (s *service) GetCoach(ctx context.Context, id uuid.UUID) (*Coach, error) {
	key := constants.BuildCoachDetailKey(id.String())
	var cached Coach
	if s.getCache(ctx, key, &cached) {
		return &cached, nil
	}

	coach, err := s.repo.GetCoach(ctx, id)
	if err != nil {
		return nil, err
	}
	s.setCache(ctx, key, coach, constants.TTL_CATALOG_DETAIL)
	return coach, nil
}

func (s *service) GetEquipment(ctx context.Context, id uuid.UUID) (*Equipment, error) {
	key := constants.BuildEquipmentDetailKey(id.String())
	var cached Equipment
	if s.getCache(ctx, key, &cached) {
		return &cached, nil
	}

	item, err := s.repo.GetEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	s.setCache(ctx, key, item, constants.TTL_CATALOG_DETAIL)
	return item, nil
}

func (s *service) ListCourts(ctx context.Context, filter CourtFilter) ([]Court, error) {
	key := constants.BuildCourtListKey(string(filter.Type), filter.ActiveOnly)
	var cached []Court
	if s.getCache(ctx, key, &cached) {
		return cached, nil
	}

	courts, err := s.repo.ListCourts(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.setCache(ctx, key, courts, constants.TTL_COURTS_LIST)
	return courts, nil
}

func (s *service) ListCoaches(ctx context.Context) ([]Coach, error) {
	var cached []Coach
	if s.getCache(ctx, constants.CACHE_KEY_COACHES_LIST, &cached) {
		return cached, nil
	}

	coaches, err := s.repo.ListCoaches(ctx, true)
	if err != nil {
		return nil, err
	}
	s.setCache(ctx, constants.CACHE_KEY_COACHES_LIST, coaches, constants.TTL_CATALOG_LIST)
	return coaches, nil
}

func (s *service) ListEquipment(ctx context.Context) ([]Equipment, error) {
	var cached []Equipment
	if s.getCache(ctx, constants.CACHE_KEY_EQUIPMENT_LIST, &cached) {
		return cached, nil
	}

	items, err := s.repo.ListEquipment(ctx, true)
	if err != nil {
		return nil, err
	}
	s.setCache(ctx, constants.CACHE_KEY_EQUIPMENT_LIST, items, constants.TTL_CATALOG_LIST)
	return items, nil
}

func (s *service) ListActivePricingRules(ctx context.Context) ([]PricingRule, error) {
	var cached []PricingRule
	if s.getCache(ctx, constants.CACHE_KEY_PRICING_RULES, &cached) {
		return cached, nil
	}

	rules, err := s.repo.ListActivePricingRules(ctx)
	if err != nil {
		return nil, err
	}
	s.setCache(ctx, constants.CACHE_KEY_PRICING_RULES, rules, constants.TTL_PRICING_RULES)
	return rules, nil
}

// InvalidateCache drops every cached catalog entry. Called after seeding.
func (s *service) InvalidateCache(ctx context.Context) error {
	if s.cacheService == nil {
		return nil
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_CATALOG_ALL); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}
