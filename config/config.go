package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	Env         string
	DBDriver    string // sqlite|postgres
	DBPath      string
	DBDSN       string
	CORSOrigins []string
	ActorHeader string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function so tests need not touch the process env.
func FromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}
	return AppConfig{
		Port:        get("PORT", "8080"),
		Env:         get("APP_ENV", "development"),
		DBDriver:    strings.ToLower(get("DB_DRIVER", "sqlite")),
		DBPath:      get("DB_PATH", "stockplant.db"),
		DBDSN:       get("DB_DSN", ""),
		CORSOrigins: splitList(get("CORS_ORIGINS", "*")),
		ActorHeader: get("ACTOR_HEADER", "X-User-ID"),
	}
}

func (c AppConfig) Production() bool { return c.Env == "production" || c.Env == "prod" }

// LogFields is the config as key/value pairs for structured logging.
func (c AppConfig) LogFields() []interface{} {
	return []interface{}{
		"port", c.Port,
		"env", c.Env,
		"db_driver", c.DBDriver,
		"db_path", c.DBPath,
		"db_dsn", c.DBDSN,
		"cors_origins", c.CORSOrigins,
		"actor_header", c.ActorHeader,
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
