package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"shipvoid-backend/internal/config"
	"shipvoid-backend/internal/db"
	"shipvoid-backend/internal/logging"
	"shipvoid-backend/internal/repositories"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "Path to the YAML config file")
	keepDays := flag.Int("keep-days", 90, "Keep runs loaded within this many days (0 deletes everything)")
	yes := flag.Bool("yes", false, "Skip the confirmation prompt")
	flag.Parse()

	log := logging.Component("Prune")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cutoff := time.Now().AddDate(0, 0, -*keepDays)
	if *keepDays <= 0 {
		cutoff = time.Now().Add(time.Minute)
	}

	fmt.Printf("This deletes reconciliation runs loaded before %s from %s@%s/%s\n",
		cutoff.Format("2006-01-02 15:04"), cfg.Database.User, cfg.Database.Host, cfg.Database.Name)
	if !*yes {
		fmt.Print("Type 'yes' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Prune cancelled.")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	n, err := repositories.NewRunRepository(pool).DeleteBefore(ctx, cutoff)
	if err != nil {
		log.Errorf("Prune failed: %v", err)
		os.Exit(1)
	}
	log.Infof("Deleted %d runs", n)
}
