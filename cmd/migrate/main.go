package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/infrastructure/database"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 0, "maximum number of migrations to run (0 = all)")
	status := flag.Bool("status", false, "list migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	if *status {
		records, err := migrate.GetMigrationRecords(sqlDB, "postgres")
		if err != nil {
			log.Fatalf("Failed to read migration records: %v", err)
		}
		for _, r := range records {
			log.Printf("✅ %s applied at %s", r.Id, r.AppliedAt.Format("2006-01-02 15:04:05"))
		}
		log.Printf("%d migration(s) applied", len(records))
		return
	}

	direction := migrate.Up
	if *down {
		direction = migrate.Down
	}

	log.Printf("🔄 Running embedded migrations (down=%v, steps=%d)...", *down, *steps)
	n, err := migrate.ExecMax(sqlDB, "postgres", database.Migrations(), direction, *steps)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("✅ Successfully ran %d migration(s)!", n)
}
