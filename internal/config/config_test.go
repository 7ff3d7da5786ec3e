package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "SESSION_TTL", "CORS_ORIGINS", "DEV_AUTH", "TIMEZONE", "COOKIE_NAME"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	if cfg.Port != "8080" || cfg.CookieName != "dairysync_session" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !cfg.UsesMemoryStore() || cfg.DevAuth {
		t.Fatalf("expected memory store without dev auth")
	}
	if cfg.SessionTTL != 30*24*time.Hour || cfg.Location != time.Local {
		t.Fatalf("unexpected ttl/location %v %v", cfg.SessionTTL, cfg.Location)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "postgres://localhost/dairy")
	t.Setenv("SESSION_TTL", "12")
	t.Setenv("CORS_ORIGINS", "http://a.test/, ,http://b.test")
	t.Setenv("DEV_AUTH", "TRUE")
	t.Setenv("TIMEZONE", "UTC")

	cfg := FromEnv()
	if cfg.DBDriver != "pgx" {
		t.Fatalf("dsn without driver should default to pgx, got %q", cfg.DBDriver)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("expected 12h, got %v", cfg.SessionTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if !cfg.DevAuth || cfg.Location != time.UTC {
		t.Fatalf("unexpected dev auth/location %v %v", cfg.DevAuth, cfg.Location)
	}

	t.Setenv("SESSION_TTL", "90m")
	if got := FromEnv().SessionTTL; got != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", got)
	}
}
