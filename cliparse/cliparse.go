package cliparse

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

const (
	defaultPort        = 8002
	defaultSQLitePath  = "sondaj.db"
	defaultOrigins     = "http://localhost:3000,http://localhost:8001,http://0.0.0.0:8080"
	defaultOriginRegex = `https.*\.(fitss.ro)`
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Origins in this list or matching OriginRegex get CORS headers
	AllowedOrigins []string
	OriginRegex    *regexp.Regexp
}

// ParseFlags reads flags, then environment, then an optional .env file
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var origins, originRegex, envFile string

	fs := flag.NewFlagSet("sondaj-live", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&origins, "cors-origins", "", "Allowed CORS origins, comma separated or JSON array")
	fs.StringVar(&originRegex, "cors-origin-regex", "", "Regex of additionally allowed CORS origins")
	fs.StringVar(&envFile, "env-file", ".env", "Optional dotenv file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Existing environment variables are never overwritten by the file
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

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

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLitePath
	}

	if origins == "" {
		origins = os.Getenv("BACKEND_CORS_ORIGINS")
	}
	if origins == "" {
		origins = defaultOrigins
	}
	list, err := parseOrigins(origins)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowedOrigins = list

	if originRegex == "" {
		originRegex = os.Getenv("BACKEND_CORS_ORIGIN_REGEX")
	}
	if originRegex == "" {
		originRegex = defaultOriginRegex
	}
	// Matched against the whole origin
	re, err := regexp.Compile("^(?:" + originRegex + ")$")
	if err != nil {
		return Config{}, fmt.Errorf("invalid CORS origin regex: %w", err)
	}
	cfg.OriginRegex = re

	return cfg, nil
}

// parseOrigins accepts either "a,b,c" or a JSON array of strings
func parseOrigins(v string) ([]string, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "[") {
		var list []string
		if err := json.Unmarshal([]byte(v), &list); err != nil {
			return nil, fmt.Errorf("invalid BACKEND_CORS_ORIGINS: %w", err)
		}
		return list, nil
	}

	var list []string
	for _, origin := range strings.Split(v, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			list = append(list, origin)
		}
	}
	return list, nil
}
