package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/juho05/log"

	site "github.com/dylanat/site"
	"github.com/dylanat/site/config"
	"github.com/dylanat/site/handlers"
	"github.com/dylanat/site/repos/connect"
	"github.com/dylanat/site/services"
)

func run() error {
	handler := handlers.NewHandler()

	db, err := connect.FromConfig()
	if err != nil {
		return fmt.Errorf("connect to session store: %w", err)
	}
	defer db.Close()

	sessionRepo := db.NewSessionRepository()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if !connect.SelfCleaning(config.SessionStore()) {
		go services.CleanupExpiredSessions(ctx, sessionRepo, time.Hour)
	}

	handler.SessionManager = services.NewSessionManager(sessionRepo, config.CookieSecure())
	sessionService := services.NewSessionService(handler.SessionManager)
	handler.AuthService = services.NewAuthService(config.Env{}, sessionService)

	handler.Renderer, err = handlers.NewRenderer(site.HTMLFS)
	if err != nil {
		return fmt.Errorf("initialize renderer: %w", err)
	}

	handler.StaticFS = site.StaticFS
	handler.BehindProxy = config.BehindProxy()
	handler.RegisterRoutes()

	if _, ok := (config.Env{}).GetSecret(config.AdminPasswordKey); !ok {
		log.Info("ADMIN_PASSWORD is not set. Admin login is disabled.")
	}

	addr := fmt.Sprintf(":%d", config.Port())
	log.Infof("Listening on %s...", addr)

	cert := config.TLSCert()
	key := config.TLSKey()
	if cert != "" && key != "" {
		return http.ListenAndServeTLS(addr, cert, key, handler)
	}
	return http.ListenAndServe(addr, handler)
}

func main() {
	godotenv.Load()

	log.SetSeverity(config.LogLevel())
	log.SetOutput(config.LogFile())

	err := run()
	if err != nil {
		log.Fatalf("%s", err)
	}
}
