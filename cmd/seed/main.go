package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tlemoine/gamehaul-backend/internal/users"
	"github.com/tlemoine/gamehaul-backend/pkg/config"
	"github.com/tlemoine/gamehaul-backend/pkg/db"
	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	"github.com/tlemoine/gamehaul-backend/pkg/logger"
	"github.com/tlemoine/gamehaul-backend/pkg/security"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     enums.UserRole
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	withDemoData := flag.Bool("demo", false, "also seed a sample order with wishes")
	password := flag.String("password", "changeme-gamehaul", "password assigned to every seeded user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.App.IsProd() {
		logg.Error(context.Background(), "seeding refused", fmt.Errorf("seed must not run against %s", cfg.App.Env))
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)
	gormDB := dbClient.DB()
	promoter := users.NewPromoter(cfg.Admin, users.NewRepository(gormDB), logg)

	seeds := []seedUser{
		{Name: "Léa Fournier", Email: "lea@gamehaul.club", Role: enums.UserRoleAdmin},
		{Name: "Marc Aubert", Email: "marc@gamehaul.club", Role: enums.UserRoleMember},
		{Name: "Ines Rousseau", Email: "ines@gamehaul.club", Role: enums.UserRoleMember},
	}
	for _, email := range cfg.Admin.NormalizedAdminEmails() {
		seeds = append(seeds, seedUser{Name: email, Email: email, Role: enums.UserRoleMember})
	}

	seeded := make([]*models.User, 0, len(seeds))
	for _, seed := range seeds {
		user, err := ensureUser(ctx, gormDB, cfg, seed, *password)
		if err != nil {
			logg.Error(ctx, "failed to seed user", err)
			os.Exit(1)
		}

		promoted, err := promoter.EnsurePromoted(ctx, user)
		if err != nil {
			logg.Error(ctx, "failed to apply admin allow-list", err)
			os.Exit(1)
		}
		if promoted.Role != user.Role {
			logg.Info(logg.WithFields(ctx, map[string]any{
				"email": promoted.Email,
				"role":  string(promoted.Role),
			}), "allow-listed user promoted during seed")
			user = promoted
		}

		seeded = append(seeded, user)
		fmt.Printf("seeded %s (%s)\n", user.Email, user.Role)
	}

	if *withDemoData {
		if err := seedDemoOrder(ctx, gormDB, seeded); err != nil {
			logg.Error(ctx, "failed to seed demo order", err)
			os.Exit(1)
		}
		fmt.Println("seeded demo order with wishes")
	}
}

func ensureUser(ctx context.Context, gormDB *gorm.DB, cfg *config.Config, seed seedUser, password string) (*models.User, error) {
	var existing models.User
	err := gormDB.WithContext(ctx).Where("lower(email) = lower(?)", seed.Email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:         seed.Email,
		PasswordHash:  hash,
		Name:          seed.Name,
		Role:          seed.Role,
		EmailVerified: true,
	}
	if err := gormDB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func seedDemoOrder(ctx context.Context, gormDB *gorm.DB, seeded []*models.User) error {
	if len(seeded) < 2 {
		return fmt.Errorf("need at least two users to seed wishes")
	}

	targetDate := time.Now().AddDate(0, 1, 0)
	customs := decimal.RequireFromString("24.00")
	shipping := decimal.RequireFromString("18.50")
	description := "Monthly bundle from the usual importer."

	order := &models.Order{
		Type:         enums.OrderTypeMonthly,
		Status:       enums.OrderStatusPlanning,
		Title:        "October group order",
		Description:  &description,
		TargetDate:   &targetDate,
		CustomsFees:  &customs,
		ShippingCost: &shipping,
	}
	if err := gormDB.WithContext(ctx).Create(order).Error; err != nil {
		return err
	}

	estimated := decimal.RequireFromString("42.00")
	wishes := []models.Wish{
		{
			OrderID:        order.ID,
			UserID:         seeded[1].ID,
			ProductName:    "Catan: Seafarers",
			Quantity:       1,
			EstimatedPrice: &estimated,
			Status:         enums.WishStatusSubmitted,
		},
		{
			OrderID:     order.ID,
			UserID:      seeded[len(seeded)-1].ID,
			ProductName: "Wingspan: Oceania",
			Quantity:    2,
			Status:      enums.WishStatusSubmitted,
		},
	}
	return gormDB.WithContext(ctx).Create(&wishes).Error
}
