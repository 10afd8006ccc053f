// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Store types
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

const (
	defaultPort         = 3000
	defaultDataFile     = ".data/mosques.json"
	defaultSQLiteURL    = "file:.data/mosques.db"
	defaultUploadDir    = "uploads"
	defaultStaticDir    = "public"
	defaultTimezone     = "Asia/Dhaka"
	defaultStoreTimeout = 5 * time.Second
	defaultMaxUpload    = 5 << 20
	defaultClientSalt   = "biryani-lagbe"
)

type Config struct {
	Port           int
	StoreType      string
	DataFile       string
	DatabaseURL    string
	UploadDir      string
	StaticDir      string
	Timezone       string
	Location       *time.Location
	StoreTimeout   time.Duration
	MaxUploadBytes int64
	ClientIDSalt   string
	EnvFile        string
}

// ParseFlags reads flags, then a .env file, then environment variables.
// Flags win over the environment.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("biryani-lagbe", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreType, "store", "", "Store type (file, sqlite or postgres)")
	fs.StringVar(&cfg.DataFile, "data", "", "Snapshot file for the file store")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL for sqlite or postgres")
	fs.StringVar(&cfg.UploadDir, "uploads", "", "Directory for proof images")
	fs.StringVar(&cfg.StaticDir, "static", "", "Directory with the map front-end")
	fs.StringVar(&cfg.Timezone, "tz", "", "Time zone for default dates")
	fs.DurationVar(&cfg.StoreTimeout, "store-timeout", 0, "Maximum wait for a store write")
	fs.Int64Var(&cfg.MaxUploadBytes, "max-upload", 0, "Maximum request size for proof uploads in bytes")
	fs.StringVar(&cfg.ClientIDSalt, "client-salt", "", "Salt for hashing client ids in logs (prefer env)")
	fs.StringVar(&cfg.EnvFile, "env", ".env", "Optional dotenv file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.EnvFile != "" {
		// Load does not override variables already set.
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}

	cfg.StoreType = firstNonEmpty(cfg.StoreType, os.Getenv("STORE_TYPE"), StoreFile)
	switch cfg.StoreType {
	case StoreFile:
		cfg.DataFile = firstNonEmpty(cfg.DataFile, os.Getenv("DATA_FILE"), defaultDataFile)
	case StoreSQLite:
		cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), defaultSQLiteURL)
	case StorePostgres:
		cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"))
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown store type %q (use file, sqlite or postgres)", cfg.StoreType)
	}

	cfg.UploadDir = firstNonEmpty(cfg.UploadDir, os.Getenv("UPLOAD_DIR"), defaultUploadDir)
	cfg.StaticDir = firstNonEmpty(cfg.StaticDir, os.Getenv("STATIC_DIR"), defaultStaticDir)
	cfg.ClientIDSalt = firstNonEmpty(cfg.ClientIDSalt, os.Getenv("CLIENT_ID_SALT"), defaultClientSalt)

	cfg.Timezone = firstNonEmpty(cfg.Timezone, os.Getenv("TIMEZONE"), defaultTimezone)
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid time zone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.StoreTimeout == 0 {
		if v := os.Getenv("STORE_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, errors.New("invalid STORE_TIMEOUT env variable")
			}
			cfg.StoreTimeout = d
		} else {
			cfg.StoreTimeout = defaultStoreTimeout
		}
	}
	if cfg.StoreTimeout <= 0 {
		return Config{}, errors.New("store timeout must be positive")
	}

	if cfg.MaxUploadBytes == 0 {
		if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid MAX_UPLOAD_BYTES env variable")
			}
			cfg.MaxUploadBytes = n
		} else {
			cfg.MaxUploadBytes = defaultMaxUpload
		}
	}
	if cfg.MaxUploadBytes <= 0 {
		return Config{}, errors.New("max upload size must be positive")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
