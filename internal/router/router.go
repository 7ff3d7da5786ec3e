package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "dairysync/docs"
	"dairysync/internal/adapters/auth/session"
	"dairysync/internal/adapters/capabilities/roles"
	mem "dairysync/internal/adapters/storage/memory"
	"dairysync/internal/domain/accounts"
	"dairysync/internal/domain/animals"
	"dairysync/internal/domain/dailylogs"
	"dairysync/internal/domain/health"
	"dairysync/internal/middleware"
	"dairysync/internal/platform/logger"
	"dairysync/internal/platform/web"
	"dairysync/internal/ports/auth"
)

// Store es lo que el router necesita de un backend de persistencia
// (memory.Store o sqlstore.Store).
type Store interface {
	Accounts() accounts.Repository
	Animals() animals.Repository
	DailyLogs() dailylogs.Repository
}

type pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Logger logger.Logger

	// Opcional: si no viene, in-memory.
	Store Store

	// Sessions firma y verifica la cookie de sesión. Tiene que venir configurado.
	Sessions *session.Manager
	Cookie   session.Cookie

	// DevAuth: además de la cookie no se verifica nada; X-Debug-User-ID / X-Debug-Role
	// definen el usuario. Solo para desarrollo local.
	DevAuth bool

	CORSOrigins []string

	// Location define "hoy" para el dashboard.
	Location *time.Location

	// Hasher opcional (tests usan bcrypt.MinCost).
	Hasher accounts.PasswordHasher
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	resolver := roles.NewResolver()

	var verifier auth.AuthVerifier
	if !opts.DevAuth {
		verifier = opts.Sessions
	}
	r.Use(middleware.AuthContext(verifier, opts.Cookie.Token, resolver))

	store := opts.Store
	if store == nil {
		store = mem.NewStore()
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if p, ok := store.(pinger); ok {
			if err := p.Ping(r.Context()); err != nil {
				log.Error("health check failed", map[string]any{"error": err})
				web.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
				return
			}
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	accountsSvc := accounts.NewService(store.Accounts(), opts.Hasher)
	animalsSvc := animals.NewService(store.Animals())
	logsSvc := dailylogs.NewService(store.DailyLogs(), animalsSvc)
	healthSvc := health.NewService(animalsSvc, logsSvc, opts.Location)

	sessions := session.Writer{Manager: opts.Sessions, Cookie: opts.Cookie}

	// Rutas por módulo
	accounts.RegisterRoutes(r, accountsSvc, sessions, resolver, log)
	animals.RegisterRoutes(r, animalsSvc, logsSvc, log)
	dailylogs.RegisterRoutes(r, logsSvc, animalsSvc, log)
	health.RegisterRoutes(r, healthSvc, log)

	return r
}
