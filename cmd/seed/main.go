// Command seed populates the database with generated demo data.
package main

import (
	"flag"
	"log"

	"quotary/internal/config"
	"quotary/internal/database"
	"quotary/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numAuthors := flag.Int("authors", 15, "Number of authors to create")
	numQuotes := flag.Int("quotes", 100, "Number of quotes to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumAuthors:  *numAuthors,
		NumQuotes:   *numQuotes,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
