package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"courtly/internal/catalog"
	"courtly/internal/shared/config"
	"courtly/internal/shared/database"
	"courtly/internal/shared/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Seeder struct {
	db   *database.DB
	repo catalog.Repository
}

func main() {
	reset := flag.Bool("reset", false, "delete every reservation before seeding")
	flag.Parse()

	fmt.Println("🌱 Starting Courtly Database Seeder...")
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, repo: catalog.NewRepository(db.GetPostgreSQL())}

	if *reset {
		fmt.Println("\n🧹 Cleaning reservations...")
		if err := seeder.CleanReservations(); err != nil {
			log.Fatalf("Failed to clean reservations: %v", err)
		}
		fmt.Println("✅ Reservations cleaned successfully")
	}

	fmt.Println("\n🌱 Seeding catalog...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Catalog seeded successfully")

	if err := printDevTokens(cfg); err != nil {
		log.Fatalf("Failed to mint tokens: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanReservations truncates reservations. Catalog rows are upserted by
// name, so they never need cleaning.
func (s *Seeder) CleanReservations() error {
	return s.db.PostgreSQL.Exec("TRUNCATE TABLE reservations RESTART IDENTITY CASCADE").Error
}

// SeedAll upserts the demo catalog
func (s *Seeder) SeedAll(ctx context.Context) error {
	if err := s.SeedCourts(ctx); err != nil {
		return fmt.Errorf("failed to seed courts: %w", err)
	}
	if err := s.SeedCoaches(ctx); err != nil {
		return fmt.Errorf("failed to seed coaches: %w", err)
	}
	if err := s.SeedEquipment(ctx); err != nil {
		return fmt.Errorf("failed to seed equipment: %w", err)
	}
	if err := s.SeedPricingRules(ctx); err != nil {
		return fmt.Errorf("failed to seed pricing rules: %w", err)
	}
	return nil
}

func (s *Seeder) SeedCourts(ctx context.Context) error {
	courts := []catalog.Court{
		{Name: "Indoor Court A", Type: catalog.CourtTypeIndoor, BasePrice: 30, IsActive: true,
			Description: "Premium indoor court with air conditioning and professional lighting"},
		{Name: "Indoor Court B", Type: catalog.CourtTypeIndoor, BasePrice: 30, IsActive: true,
			Description: "Modern indoor court with excellent ventilation"},
		{Name: "Outdoor Court 1", Type: catalog.CourtTypeOutdoor, BasePrice: 20, IsActive: true,
			Description: "Open-air court with natural lighting, perfect for morning sessions"},
		{Name: "Outdoor Court 2", Type: catalog.CourtTypeOutdoor, BasePrice: 20, IsActive: true,
			Description: "Spacious outdoor court with shade covers"},
	}
	for i := range courts {
		if err := s.repo.UpsertCourt(ctx, &courts[i]); err != nil {
			return err
		}
		fmt.Printf("  Court: %-16s %s\n", courts[i].Name, courts[i].ID)
	}
	return nil
}

func (s *Seeder) SeedCoaches(ctx context.Context) error {
	coaches := []catalog.Coach{
		{Name: "Michael Johnson", Email: "michael@courtly.dev", Specialization: "Singles Strategy", HourlyRate: 50,
			Bio: "Former national champion with 10 years of coaching experience."},
		{Name: "Sarah Williams", Email: "sarah@courtly.dev", Specialization: "Doubles Tactics", HourlyRate: 45,
			Bio: "Expert in doubles gameplay and coordination."},
		{Name: "David Chen", Email: "david@courtly.dev", Specialization: "Beginner Training", HourlyRate: 35,
			Bio: "Patient coach focused on fundamentals."},
	}
	for i := range coaches {
		coaches[i].IsActive = true
		coaches[i].Availability = catalog.DefaultWeeklySchedule()
		if err := s.repo.UpsertCoach(ctx, &coaches[i]); err != nil {
			return err
		}
		fmt.Printf("  Coach: %-16s %s\n", coaches[i].Name, coaches[i].ID)
	}
	return nil
}

func (s *Seeder) SeedEquipment(ctx context.Context) error {
	items := []catalog.Equipment{
		{Name: "Professional Racket", Type: catalog.EquipmentTypeRacket, TotalQuantity: 20, HourlyRate: 5,
			Description: "High-quality carbon fiber racket suitable for all skill levels"},
		{Name: "Beginner Racket", Type: catalog.EquipmentTypeRacket, TotalQuantity: 15, HourlyRate: 3,
			Description: "Lightweight racket ideal for beginners"},
		{Name: "Court Shoes", Type: catalog.EquipmentTypeShoes, TotalQuantity: 25, HourlyRate: 4,
			Description: "Non-marking court shoes available in various sizes"},
		{Name: "Shuttlecock Pack", Type: catalog.EquipmentTypeShuttlecock, TotalQuantity: 50, HourlyRate: 2,
			Description: "Pack of 3 feather shuttlecocks"},
	}
	for i := range items {
		items[i].IsActive = true
		if err := s.repo.UpsertEquipment(ctx, &items[i]); err != nil {
			return err
		}
		fmt.Printf("  Equipment: %-20s x%d %s\n", items[i].Name, items[i].TotalQuantity, items[i].ID)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func (s *Seeder) SeedPricingRules(ctx context.Context) error {
	rules := []catalog.PricingRule{
		{Name: "Peak Hour Surcharge", Description: "Higher rates during peak evening hours (6 PM - 9 PM)",
			Type: catalog.RuleTypePeakHour, StartTime: strPtr("18:00"), EndTime: strPtr("21:00"),
			ModifierType: catalog.ModifierMultiplier, ModifierValue: 1.5, AppliesTo: catalog.ScopeAll, Priority: 10},
		{Name: "Weekend Rate", Description: "Additional charge for weekend bookings",
			Type: catalog.RuleTypeWeekend, DaysOfWeek: catalog.WeekdaySet{0, 6},
			ModifierType: catalog.ModifierFixedAddition, ModifierValue: 10, AppliesTo: catalog.ScopeAll, Priority: 5},
		{Name: "Indoor Premium", Description: "Premium rate for indoor courts",
			Type: catalog.RuleTypeIndoorPremium,
			ModifierType: catalog.ModifierFixedAddition, ModifierValue: 5, AppliesTo: catalog.ScopeIndoor, Priority: 3},
		{Name: "Early Bird Discount", Description: "Discount for early morning bookings (6 AM - 9 AM)",
			Type: catalog.RuleTypeEarlyBird, StartTime: strPtr("06:00"), EndTime: strPtr("09:00"),
			ModifierType: catalog.ModifierPercentage, ModifierValue: -15, AppliesTo: catalog.ScopeAll, Priority: 8},
		{Name: "Christmas Holiday Rate", Description: "Special holiday pricing",
			Type: catalog.RuleTypeHoliday, SpecificDates: catalog.DateList{"2025-12-25", "2025-12-26"},
			ModifierType: catalog.ModifierMultiplier, ModifierValue: 2, AppliesTo: catalog.ScopeAll, Priority: 20},
	}
	for i := range rules {
		rules[i].IsActive = true
		if err := s.repo.UpsertPricingRule(ctx, &rules[i]); err != nil {
			return err
		}
		fmt.Printf("  Rule: %-24s priority %d\n", rules[i].Name, rules[i].Priority)
	}
	return nil
}

// printDevTokens mints access tokens for a demo player and admin. Tokens
// are normally issued by the identity service.
func printDevTokens(cfg *config.Config) error {
	fmt.Println("\n🔑 Development access tokens (24h):")
	for _, role := range []string{middleware.RoleUser, middleware.RoleAdmin} {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": uuid.NewString(),
			"email":   fmt.Sprintf("%s@courtly.dev", role),
			"role":    role,
			"type":    "access",
			"exp":     time.Now().Add(24 * time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(cfg.JWT.Secret))
		if err != nil {
			return err
		}
		fmt.Printf("  %-5s Bearer %s\n", role, signed)
	}
	return nil
}
