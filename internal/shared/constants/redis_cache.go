package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// All Redis cache keys and TTL values for the Courtly application
// Pattern: courtly:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for the court list
	TTL_STATIC_SHORT  = 6 * time.Hour  // 6 hours - for coach and equipment lists
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // 1 hour - for catalog details
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // 15 minutes - for pricing rules
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_MEDIUM = 1 * time.Minute  // 1 minute - for slot grids
	TTL_REALTIME_SHORT  = 30 * time.Second // 30 seconds - for waitlist queues
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "courtly"
)

// ================== CATALOG MODULE ==================

// Catalog Cache Keys
const (
	CACHE_KEY_COURTS_LIST      = CACHE_PREFIX + ":catalog:courts:list"         // + :type:X:active:Y
	CACHE_KEY_COURT_DETAIL     = CACHE_PREFIX + ":catalog:courts:detail:uuid:" // + court-id
	CACHE_KEY_COACHES_LIST     = CACHE_PREFIX + ":catalog:coaches:list"
	CACHE_KEY_COACH_DETAIL     = CACHE_PREFIX + ":catalog:coaches:detail:uuid:" // + coach-id
	CACHE_KEY_EQUIPMENT_LIST   = CACHE_PREFIX + ":catalog:equipment:list"
	CACHE_KEY_EQUIPMENT_DETAIL = CACHE_PREFIX + ":catalog:equipment:detail:uuid:" // + equipment-id
	CACHE_KEY_PRICING_RULES    = CACHE_PREFIX + ":catalog:pricing_rules:active"
)

// Catalog Cache TTLs
const (
	TTL_COURTS_LIST    = TTL_STATIC_MEDIUM     // 12 hours
	TTL_CATALOG_LIST   = TTL_STATIC_SHORT      // 6 hours
	TTL_CATALOG_DETAIL = TTL_SEMI_STATIC_SHORT // 1 hour
	TTL_PRICING_RULES  = TTL_SEMI_STATIC_QUICK // 15 minutes
)

// ================== BOOKINGS MODULE ==================

// Booking Cache Keys
const (
	CACHE_KEY_SLOTS = CACHE_PREFIX + ":bookings:slots:court:" // + court-id:date:YYYY-MM-DD:duration:N
)

// Booking Cache TTLs
const (
	TTL_SLOTS = TTL_REALTIME_MEDIUM // 1 minute
)

// ================== WAITLIST MODULE ==================

// Waitlist Cache Keys
const (
	CACHE_KEY_WAITLIST_QUEUE = CACHE_PREFIX + ":waitlist:queue:court:" // + court-id:date:D:slot:S-E
)

// Waitlist Cache TTLs
const (
	TTL_WAITLIST_QUEUE = TTL_REALTIME_SHORT // 30 seconds
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with Redis KEYS command)
const (
	PATTERN_INVALIDATE_CATALOG_ALL = CACHE_PREFIX + ":catalog:*"
)

// ================== HELPER FUNCTIONS ==================

// BuildCourtListKey -> "courtly:catalog:courts:list:type:indoor:active:true"
func BuildCourtListKey(courtType string, activeOnly bool) string {
	if courtType == "" {
		courtType = "all"
	}
	return fmt.Sprintf("%s:type:%s:active:%t", CACHE_KEY_COURTS_LIST, courtType, activeOnly)
}

func BuildCourtDetailKey(courtID string) string {
	return CACHE_KEY_COURT_DETAIL + courtID
}

func BuildCoachDetailKey(coachID string) string {
	return CACHE_KEY_COACH_DETAIL + coachID
}

func BuildEquipmentDetailKey(equipmentID string) string {
	return CACHE_KEY_EQUIPMENT_DETAIL + equipmentID
}

// BuildSlotsKey -> "courtly:bookings:slots:court:<id>:date:2025-03-08:duration:60"
func BuildSlotsKey(courtID, date string, durationMinutes int) string {
	return CACHE_KEY_SLOTS + courtID + ":date:" + date + ":duration:" + fmt.Sprintf("%d", durationMinutes)
}

// BuildSlotsPattern matches every cached grid of one court and day.
func BuildSlotsPattern(courtID, date string) string {
	return CACHE_KEY_SLOTS + courtID + ":date:" + date + ":*"
}

func BuildWaitlistQueueKey(courtID, date, startTime, endTime string) string {
	return CACHE_KEY_WAITLIST_QUEUE + courtID + ":date:" + date + ":slot:" + startTime + "-" + endTime
}

// BuildWaitlistQueuePattern matches every queue of one court and day.
func BuildWaitlistQueuePattern(courtID, date string) string {
	return CACHE_KEY_WAITLIST_QUEUE + courtID + ":date:" + date + ":*"
}
