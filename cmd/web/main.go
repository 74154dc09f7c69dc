// cmd/web/main.go
//
// Canopy – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load typed config; resolve `vault:` secrets when a Vault server
//     is configured.
//
//  4. Open the control-plane DB and log the routable-tenant count.
//
//  5. Build the pipeline: reserved registry → directory → resolver →
//     tenant-context middleware → guard chain.
//
//  6. Mount routes.  /healthz and /metrics stay outside tenant
//     binding; everything under /api resolves a tenant and then runs
//     the ordered guard chain (auth → roles → tenant → subscription).
//
//  7. Optionally wrap the root handler with ForceHTTPS so plain-HTTP
//     requests to known tenant hosts are 308-redirected.
//
// Large comment blocks are framed by blank “//” lines; inline comments
// use a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/canopysites/canopy/internal/auth"
	"github.com/canopysites/canopy/internal/billing"
	"github.com/canopysites/canopy/internal/config"
	"github.com/canopysites/canopy/internal/database"
	"github.com/canopysites/canopy/internal/domaincheck"
	"github.com/canopysites/canopy/internal/guard"
	"github.com/canopysites/canopy/internal/handlers"
	"github.com/canopysites/canopy/internal/logger"
	"github.com/canopysites/canopy/internal/middleware"
	"github.com/canopysites/canopy/internal/requestinfo"
	"github.com/canopysites/canopy/internal/reserved"
	"github.com/canopysites/canopy/internal/respond"
	"github.com/canopysites/canopy/internal/server"
	"github.com/canopysites/canopy/internal/tenant"
	"github.com/canopysites/canopy/internal/vault"
)

const serverEnvPath = "/usr/local/etc/canopy/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalw("load config", "err", err)
	}

	ctx := context.Background()

	//
	// ── 1.  Secrets ─────────────────────────────────────────────────────
	//
	dbPassword := cfg.Database.Password
	jwtSecret := cfg.Auth.JWTSecret
	if os.Getenv("VAULT_ADDR") != "" {
		vc, err := vault.New(ctx, logOut.Infof)
		if err != nil {
			logOut.Fatalw("vault init", "err", err)
		}
		if dbPassword, err = vc.Resolve(ctx, dbPassword); err != nil {
			logOut.Fatalw("resolve db password", "err", err)
		}
		if jwtSecret, err = vc.Resolve(ctx, jwtSecret); err != nil {
			logOut.Fatalw("resolve jwt secret", "err", err)
		}
	}

	//
	// ── 2.  Control-plane DB ────────────────────────────────────────────
	//
	dsn := strings.ReplaceAll(cfg.Database.DSN, "{password}", dbPassword)
	logOut.Infow("connecting to control-plane DB")
	db, err := database.Open(dsn)
	if err != nil {
		logOut.Fatalw("connect control-plane DB", "err", err)
	}
	defer db.Close()

	// Early sanity check: how many tenants could serve traffic?
	var routable int
	_ = db.Get(&routable, `
	    SELECT COUNT(*) FROM tenant
	    WHERE is_active = TRUE AND status = 'active'`)
	logOut.Infow("control-plane DB online", "routable_tenants", routable)

	//
	// ── 3.  Pipeline wiring ─────────────────────────────────────────────
	//
	registry := reserved.NewDefault()
	dir := tenant.NewDirectory(db)
	resolver := tenant.NewResolver(dir, registry,
		cfg.Platform.BaseDomain, cfg.Platform.PanelMarker)
	tenantMW := tenant.NewContextMiddleware(dir, resolver,
		cfg.HTTP.ExposeResolveErrors)

	chain := guard.NewChain(
		guard.NewAuthGuard(auth.NewVerifier(jwtSecret)),
		guard.NewRolesGuard(),
		guard.NewTenantGuard(),
		guard.NewSubscriptionGuard(billing.NewService(db)),
	)

	if cfg.Geo.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
			logOut.Warnw("geo DB unavailable, continuing without", "err", err)
		}
	}

	domains := handlers.NewDomains(dir, domaincheck.New())

	//
	// ── 4.  Routes ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)
	r.Use(tenantMW.Handler) // self-gating: skips /healthz, /metrics, …

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		// Public surface: no credentials required, still tenant-bound.
		api.Group(func(pub chi.Router) {
			pub.Use(guard.Public)
			pub.Use(chain.Middleware)
			pub.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
				respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
			})
		})

		// Authenticated tenant surface.
		api.Group(func(priv chi.Router) {
			priv.Use(chain.Middleware)
			priv.Get("/tenant", handlers.TenantInfo)
		})

		// Administrative surface: role list + subscription check.
		api.Route("/admin", func(adm chi.Router) {
			adm.Use(guard.RequireRoles(auth.RoleSuperAdmin, auth.RoleTenantAdmin))
			adm.Use(chain.Middleware)
			adm.Route("/domains", domains.Mount)
		})
	})

	//
	// ── 5.  Serve ───────────────────────────────────────────────────────
	//
	var handler http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(resolver, registry, handler)
	}

	srv := server.New(cfg.HTTP.ListenAddr, handler)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
}
