// Command main loads the curated seed dataset into the database.
package main

import (
	"flag"
	"log"
	"os"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/seed"
)

func main() {
	// Parse command line flags
	adminEmail := flag.String("admin-email", os.Getenv("ADMIN_EMAIL"), "Admin account email (skipped when empty)")
	adminUsername := flag.String("admin-username", os.Getenv("ADMIN_USERNAME"), "Admin account username")
	adminPassword := flag.String("admin-password", os.Getenv("ADMIN_PASSWORD"), "Admin account password")
	demo := flag.Bool("demo", false, "Also generate synthetic contact messages and access requests")
	flag.Parse()

	log.Println("🌱 Portfolio Seeder")
	log.Println("===================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		AdminEmail:    *adminEmail,
		AdminUsername: *adminUsername,
		AdminPassword: *adminPassword,
		Demo:          *demo,
	}
	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! The site content is in place.")
	if opts.AdminEmail != "" {
		log.Printf("🔑 Dashboard login provisioned for %s\n", opts.AdminEmail)
	}
}
