package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"flavourfit/database"
	"flavourfit/internal/config"
	"flavourfit/internal/repository"
	"flavourfit/internal/utils"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	numProfiles := seedCmd.Int("profiles", utils.DefaultNumProfiles, "Number of demo profiles to upsert")
	prefix := seedCmd.String("prefix", "demo", "Identity id prefix for seeded profiles")
	seed := seedCmd.Int64("seed", time.Now().UnixNano(), "Random seed for generated answers")

	showCmd := flag.NewFlagSet("show", flag.ExitOnError)
	showID := showCmd.String("id", "", "Identity id of the profile to print")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo, closeStore, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open profile store: %v", err)
	}
	defer closeStore()

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		log.Printf("Seeding %d demo profiles with prefix %q", *numProfiles, *prefix)
		n, err := utils.SeedProfiles(ctx, repo, *numProfiles, *prefix, *seed)
		if err != nil {
			log.Fatalf("Error seeding profiles after %d written: %v", n, err)
		}
		log.Printf("Seeded %d profiles", n)

	case "show":
		showCmd.Parse(os.Args[2:])
		if *showID == "" {
			log.Fatal("--id is required")
		}
		profile, err := repo.FindByClerkID(ctx, *showID)
		if err != nil {
			log.Fatalf("Error loading profile %s: %v", *showID, err)
		}
		prefs := profile.Preferences.Data()
		fmt.Printf("%s <%s>\n  goal=%s activity=%s diet=%s cuisines=%v\n",
			profile.ClerkID, profile.Email, prefs.PrimaryGoal, prefs.ActivityLevel, prefs.DietaryPreference, prefs.Cuisines)

	default:
		printHelp()
		os.Exit(1)
	}
}

func openRepository(ctx context.Context, cfg *config.Config) (repository.UserProfileRepository, func(), error) {
	if cfg.UsesMongo() {
		db, err := database.ConnectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo, err := repository.NewMongoUserProfileRepository(ctx, db)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = db.Client().Disconnect(context.Background()) }, nil
	}

	db, err := database.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.MigrateDatabase(db); err != nil {
		return nil, nil, err
	}
	return repository.NewUserProfileRepository(db), func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}

func printHelp() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/seed seed [--profiles N] [--prefix demo] [--seed S]")
	fmt.Println("  go run ./cmd/seed show --id <identity id>")
}
