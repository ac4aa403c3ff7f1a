package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// GribBaseURL is the root of the upstream gribfiles product.
	GribBaseURL string

	// HTTPTimeout bounds each outbound download request.
	HTTPTimeout time.Duration

	// CacheDir is where downloaded GRIB files land ("" = OS temp dir).
	CacheDir string

	// CacheMaxAge is how long a downloaded file may be reused.
	CacheMaxAge time.Duration

	// SweepInterval controls how often expired cache files are removed.
	SweepInterval time.Duration

	// SampleCap bounds the number of points per response.
	SampleCap int

	// FillValues are dataset sentinels treated as missing data in
	// addition to NaN. Empty by default.
	FillValues []float64

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.GribBaseURL = getenvDefault("GRIB_BASE_URL", "https://api.met.no/weatherapi/gribfiles/1.1")
	cfg.CacheDir = os.Getenv("CACHE_DIR")
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.SampleCap = getenvInt("SAMPLE_CAP", 1000)

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	maxAgeStr := getenvDefault("CACHE_MAX_AGE", "1h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_MAX_AGE: %w", err)
	}
	cfg.CacheMaxAge = maxAge

	sweepStr := getenvDefault("SWEEP_INTERVAL", "15m")
	sweep, err := time.ParseDuration(sweepStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}
	cfg.SweepInterval = sweep

	fills, err := parseFillValues(os.Getenv("GRIB_FILL_VALUES"))
	if err != nil {
		return nil, err
	}
	cfg.FillValues = fills

	return cfg, nil
}

// parseFillValues parses a comma-separated float list, e.g. "9999,-999".
func parseFillValues(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var fills []float64
	for _, part := range strings.Split(s, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid GRIB_FILL_VALUES entry %q: %w", part, err)
		}
		fills = append(fills, f)
	}
	return fills, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
