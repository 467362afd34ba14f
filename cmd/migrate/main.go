package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/saradorri/fairplay/internal/app"
	"github.com/saradorri/fairplay/internal/infrastructure/database"
)

func main() {
	var (
		configPath = flag.String("e", "./config", "Path to config directory")
		action     = flag.String("action", "up", "Migration action: up, down, version")
		steps      = flag.Int("steps", 1, "Number of migrations to roll back with -action=down; 0 rolls back all")
	)
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	m, err := database.NewMigrator(app.DatabaseConfig(cfg).URL())
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}
	defer m.Close()

	switch *action {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Successfully migrated up")
	case "down":
		if err := m.Down(*steps); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Successfully migrated down")
	case "version":
		version, dirty, ok, err := m.Version()
		if err != nil {
			log.Fatalf("Failed to read version: %v", err)
		}
		if !ok {
			fmt.Println("No migrations applied")
			return
		}
		fmt.Printf("Version %d (dirty: %t)\n", version, dirty)
	default:
		log.Fatalf("Unknown action: %s. Valid actions: up, down, version", *action)
	}
}
