package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"pick-route-service/internal/adapters/memory"
	"pick-route-service/internal/adapters/orderclient"
	"pick-route-service/internal/adapters/repositories"
	"pick-route-service/internal/api/dto"
	"pick-route-service/internal/config"
	"pick-route-service/internal/platform/db"
	"pick-route-service/internal/platform/obs"
	"pick-route-service/internal/ports"
	"pick-route-service/internal/services"
)

// main is the application composition root.
// It wires the configured part source behind the port, runs one navigation
// or comparison and prints the result as JSON.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	orders := flag.String("orders", "", "comma-separated order numbers")
	compare := flag.Bool("compare", false, "run every strategy and report a comparison")
	algorithm := flag.String("algorithm", "", "force a strategy instead of the selector")
	weighted := flag.Bool("weighted", false, "optimize carried weight x distance")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	source, closeSource, err := openSource(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeSource()

	optimizer, err := services.NewOptimizer(cfg.Optimizer)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = obs.WithRequestID(ctx)

	orderNumbers := strings.Split(*orders, ",")

	var out any
	if *compare {
		cmp, err := optimizer.CompareOrders(ctx, orderNumbers, source)
		if err != nil {
			log.Fatal(err)
		}
		out = dto.FromComparison(cmp)
	} else {
		route, err := optimizer.Navigate(ctx, services.NavigateRequest{
			OrderNumbers: orderNumbers,
			Algorithm:    services.Algorithm(*algorithm),
			Weighted:     *weighted,
		}, source)
		if err != nil {
			log.Fatal(err)
		}
		out = dto.FromRoute(route)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode failed: err=%v", err)
	}
}

// openSource builds the PartLocationSource selected by PART_SOURCE. The
// returned func releases whatever the source holds open.
func openSource(cfg config.Config) (ports.PartLocationSource, func(), error) {
	noop := func() {}

	switch cfg.PartSource {
	case config.SourceSQLite:
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, noop, err
		}
		return repositories.NewSqlitePartLocationRepository(conn), closer(conn), nil

	case config.SourcePostgres:
		conn, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return repositories.NewSQLPartLocationRepository(conn), closer(conn), nil

	case config.SourceHTTP:
		client, err := orderclient.New(cfg.OrderServerURL, orderclient.RetryPolicy{
			MaxAttempts: cfg.OrderClientMaxAttempts,
			Backoff:     cfg.OrderClientBackoff,
		})
		if err != nil {
			return nil, noop, err
		}
		return client, noop, nil

	case config.SourceFile:
		parts, err := repositories.ReadSeedFile(cfg.PartsFile)
		if err != nil {
			return nil, noop, err
		}
		return memory.NewStaticSource(parts), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown part source %q", cfg.PartSource)
}

func closer(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.Printf("close db failed: err=%v", err)
		}
	}
}
