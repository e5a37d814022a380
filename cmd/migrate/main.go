package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/stitts-dev/gridiron-sim/internal/models"
	"github.com/stitts-dev/gridiron-sim/internal/services"
	"github.com/stitts-dev/gridiron-sim/pkg/config"
	"github.com/stitts-dev/gridiron-sim/pkg/database"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

// seedFixtures are played with fixed seeds so a seeded database is
// identical on every run.
var seedFixtures = []services.MatchRequest{
	{Home: "Harbor City", Away: "Ridgeview", Seed: 1},
	{Home: "Ridgeview", Away: "Northfield", Seed: 2},
	{Home: "Northfield", Away: "Harbor City", Seed: 3},
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetLogger().Fatalf("Failed to load config: %v", err)
	}
	appLog := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		appLog.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := models.AutoMigrate(db.DB); err != nil {
			appLog.Fatalf("Failed to run migrations: %v", err)
		}
		appLog.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			appLog.Fatalf("Failed to drop tables: %v", err)
		}
		appLog.Info("Tables dropped successfully")

	case "seed":
		count := len(seedFixtures)
		if len(os.Args) > 2 {
			if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 && n <= count {
				count = n
			}
		}
		if err := seedData(db, cfg, count); err != nil {
			appLog.Fatalf("Failed to seed data: %v", err)
		}
		appLog.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func dropTables(db *database.DB) error {
	// Children before parents for foreign key constraints
	tables := []interface{}{
		&models.DriveRecord{},
		&models.ScoreRecord{},
		&models.PlayRecord{},
		&models.MatchRecord{},
	}

	for _, table := range tables {
		if err := db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("failed to drop table %T: %w", table, err)
		}
	}

	return nil
}

func seedData(db *database.DB, cfg *config.Config, count int) error {
	if err := models.AutoMigrate(db.DB); err != nil {
		return fmt.Errorf("failed to migrate before seeding: %w", err)
	}

	service := services.NewMatchService(services.NewMatchRepository(db.DB), nil, nil, cfg)
	ctx := context.Background()
	for _, req := range seedFixtures[:count] {
		record, err := service.PlayMatch(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to play %s vs %s: %w", req.Home, req.Away, err)
		}
		logger.WithMatchContext(record.ID.String(), record.HomeTeam, record.AwayTeam).
			WithField("score", fmt.Sprintf("%d-%d", record.HomeScore, record.AwayScore)).
			Info("Seeded match")
	}
	return nil
}
