package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"pick-route-service/internal/adapters/repositories"
	"pick-route-service/internal/config"
	"pick-route-service/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := flag.String("driver", config.Get("PART_SOURCE", config.SourceSQLite), "sqlite or postgres")
	flag.Parse()

	seedPath := config.Get("PARTS_FILE", "data/seeds/part_locations.json")

	var (
		conn    *sql.DB
		dialect repositories.Dialect
		err     error
	)
	switch *driver {
	case config.SourcePostgres:
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			log.Fatal("DATABASE_URL is required")
		}
		conn, err = db.OpenPostgres(databaseURL)
		dialect = repositories.Postgres
	case config.SourceSQLite:
		conn, err = db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
		dialect = repositories.SQLite
	default:
		log.Fatalf("unsupported driver %q", *driver)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(conn, dialect, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database... path=%s", seedPath)
	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
