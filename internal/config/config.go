package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pick-route-service/internal/services"
)

// Part sources understood by the composition root.
const (
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
	SourceHTTP     = "http"
	SourceFile     = "file"
)

type Config struct {
	PartSource     string
	DBPath         string
	DatabaseURL    string
	OrderServerURL string
	PartsFile      string
	Optimizer      services.Options

	// Retry settings for the order-server client.
	OrderClientMaxAttempts int
	OrderClientBackoff     time.Duration
}

// Get returns the environment value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, v, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number: %w", key, v, err)
	}
	return f, nil
}

// Load reads the configuration from the environment. Callers load .env
// beforehand with godotenv. Optimizer options start from
// services.DefaultOptions and are validated.
func Load() (Config, error) {
	cfg := Config{
		PartSource:     strings.ToLower(Get("PART_SOURCE", SourceSQLite)),
		DBPath:         Get("DB_PATH", "data/app.db"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		OrderServerURL: Get("ORDER_SERVER_URL", ""),
		PartsFile:      Get("PARTS_FILE", "data/seeds/part_locations.json"),
		Optimizer:      services.DefaultOptions(),
	}

	switch cfg.PartSource {
	case SourceSQLite, SourceFile:
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("config: DATABASE_URL is required for PART_SOURCE=%s", cfg.PartSource)
		}
	case SourceHTTP:
		if cfg.OrderServerURL == "" {
			return Config{}, fmt.Errorf("config: ORDER_SERVER_URL is required for PART_SOURCE=%s", cfg.PartSource)
		}
	default:
		return Config{}, fmt.Errorf("config: unknown PART_SOURCE %q", cfg.PartSource)
	}

	attempts, err := GetInt("ORDER_CLIENT_MAX_ATTEMPTS", 4)
	if err != nil {
		return Config{}, err
	}
	if attempts < 1 {
		return Config{}, fmt.Errorf("config: ORDER_CLIENT_MAX_ATTEMPTS=%d must be at least 1", attempts)
	}
	backoffMs, err := GetInt("ORDER_CLIENT_BACKOFF_MS", 200)
	if err != nil {
		return Config{}, err
	}
	if backoffMs < 0 {
		return Config{}, fmt.Errorf("config: ORDER_CLIENT_BACKOFF_MS=%d must not be negative", backoffMs)
	}
	cfg.OrderClientMaxAttempts = attempts
	cfg.OrderClientBackoff = time.Duration(backoffMs) * time.Millisecond

	o := &cfg.Optimizer
	ints := []struct {
		key string
		dst *int
	}{
		{"NAV_PICK_SECONDS", &o.Time.SecondsPerPick},
		{"NAV_BUFFER_SECONDS", &o.Time.BufferSeconds},
		{"NAV_HELD_KARP_MAX", &o.Selector.HeldKarpMax},
		{"NAV_BRANCH_BOUND_MAX", &o.Selector.BranchAndBoundMax},
		{"NAV_TWO_OPT_MAX", &o.Selector.TwoOptMax},
		{"NAV_HELD_KARP_CEILING", &o.HeldKarpCeiling},
		{"NAV_BRANCH_BOUND_CEILING", &o.BranchAndBoundCeiling},
		{"NAV_TWO_OPT_MAX_ITER", &o.TwoOptMaxIterations},
		{"NAV_WEIGHTED_TWO_OPT_MAX_ITER", &o.WeightedTwoOptMaxIterations},
		{"NAV_INSERTION_MAX_PASSES", &o.InsertionMaxPasses},
		{"NAV_INSERTION_SLACK", &o.InsertionSlack},
		{"NAV_ROW_SWITCH_PENALTY", &o.Layout.RowSwitchPenalty},
		{"NAV_BLOCK_ROW_SWITCH_PENALTY", &o.Layout.BlockRowSwitchPenalty},
		{"NAV_LINE_PENALTY", &o.Layout.LinePenalty},
	}
	for _, e := range ints {
		v, err := GetInt(e.key, *e.dst)
		if err != nil {
			return Config{}, err
		}
		*e.dst = v
	}

	spu, err := GetFloat("NAV_SECONDS_PER_UNIT", o.Time.SecondsPerUnit)
	if err != nil {
		return Config{}, err
	}
	o.Time.SecondsPerUnit = spu

	if err := o.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
