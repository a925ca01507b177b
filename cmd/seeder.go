package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/sashbid/internal/seed"
	"github.com/frahmantamala/sashbid/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.App.Env)
		lg := logger.LoggerWrapper()

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db, true)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		ctx := context.Background()
		seeder := seed.New(gormDB, cfg.Security.BCryptCost, lg)

		if clearData {
			if err := seeder.Clear(ctx); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		sum, err := seeder.Run(ctx)
		if err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
		if sum.Skipped {
			fmt.Println("Seed data already present; run with --clear to reseed")
			return
		}

		fmt.Printf("Seeded %d users, %d clients, %d projects, %d bids, %d inventory items\n",
			sum.Users, sum.Clients, sum.Projects, sum.Bids, sum.Items)
		fmt.Printf("Login: %s / %s\n", seed.AdminEmail, seed.DefaultPassword)
	},
}
