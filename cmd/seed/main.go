// Command main runs the database seeder for Quorum.
package main

import (
	"flag"
	"log"

	"quorum/internal/config"
	"quorum/internal/database"
	"quorum/internal/seed"
)

func main() {
	numProfiles := flag.Int("profiles", 50, "Number of profiles to create")
	numQuestions := flag.Int("questions", 100, "Number of question threads to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d profiles, %d questions, clean=%v\n", *numProfiles, *numQuestions, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seeder := seed.NewSeeder(database.DB)
	aiProfileID, err := seeder.Run(seed.Options{
		NumProfiles:  *numProfiles,
		NumQuestions: *numQuestions,
		ShouldClean:  *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. Set AI_PROFILE_ID=%d to enable the feedback workflow.", aiProfileID)
}
