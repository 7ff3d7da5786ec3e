package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración del proceso. Todo sale de env vars
// (opcionalmente desde un .env en el directorio de trabajo).
type Config struct {
	Port string

	// DBDriver: "pgx" (Postgres), "sqlite" o vacío (in-memory).
	DBDriver string
	DBDSN    string

	SessionSecret string
	SessionTTL    time.Duration
	CookieName    string
	CookieSecure  bool

	CORSOrigins []string

	// DevAuth: usuarios por headers X-Debug-* en vez de cookie. Nunca en producción.
	DevAuth bool

	LogLevel  string
	LogFormat string
	LogFile   string
	AppName   string

	// Location define qué es "hoy" para logs diarios y el dashboard.
	Location *time.Location
}

// Load carga .env si existe y devuelve la config final.
// Si no hay .env seguimos con el entorno real.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBDriver:      strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER"))),
		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    30 * 24 * time.Hour,
		CookieName:    getenv("COOKIE_NAME", "dairysync_session"),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
		DevAuth:       strings.EqualFold(os.Getenv("DEV_AUTH"), "true"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
		LogFile:       strings.TrimSpace(os.Getenv("LOG_FILE")),
		AppName:       getenv("APP_NAME", "dairysync"),
		Location:      time.Local,
	}

	// Compatibilidad: DSN sin driver explícito => Postgres.
	if cfg.DBDriver == "" && cfg.DBDSN != "" {
		cfg.DBDriver = "pgx"
	}

	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionTTL = d
		} else if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.SessionTTL = time.Duration(hours) * time.Hour
		}
	}

	for _, p := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if tz := strings.TrimSpace(os.Getenv("TIMEZONE")); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			cfg.Location = loc
		}
	}

	return cfg
}

// UsesMemoryStore indica modo dev sin base de datos.
func (c Config) UsesMemoryStore() bool {
	return c.DBDriver == ""
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
