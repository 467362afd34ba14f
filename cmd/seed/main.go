package main

import (
	"context"
	"flag"
	"log"

	"github.com/saradorri/fairplay/internal/app"
	"github.com/saradorri/fairplay/internal/config"
	"github.com/saradorri/fairplay/internal/infrastructure/auth"
	"github.com/saradorri/fairplay/internal/infrastructure/database"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/saradorri/fairplay/internal/infrastructure/repository"
	"github.com/saradorri/fairplay/internal/infrastructure/seeder"
	"github.com/saradorri/fairplay/internal/usecase/seed"
	"github.com/saradorri/fairplay/internal/usecase/user"
	"github.com/saradorri/fairplay/internal/usecase/wallet"
)

func main() {
	configPath := flag.String("e", "./config", "Path to config directory")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDatabase(app.DatabaseConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	lg := logger.NewLogger(config.GetEnvironment(), cfg.Log.Level)
	defer lg.Sync()

	store := repository.NewStore(db.GetDB())
	jwtSvc := auth.NewJWTService(&cfg.JWT)
	wallets := wallet.NewWalletUseCase(store, lg)
	s := seeder.NewSeeder(
		user.NewUserUseCase(store, jwtSvc, lg),
		wallets,
		seed.NewSeedUseCase(store, cfg.Bet.SeedLength, lg),
		lg,
	)

	log.Println("Starting database seeding...")
	if err := s.Seed(context.Background(), seeder.DefaultPlayers); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	log.Println("Database seeding completed successfully")
}
