package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"chronomap/internal/auth"
	"chronomap/internal/events"
	"chronomap/internal/importer"
	"chronomap/internal/metrics"
	"chronomap/internal/parser"
	"chronomap/internal/processor"
	"chronomap/internal/store"
	synchub "chronomap/internal/sync"
	"chronomap/pkg/database"
	"chronomap/pkg/utils"
)

func main() {
	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	srvCfg := utils.LoadServerConfig()
	if srvCfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := synchub.NewHub()
	router.GET("/ws", synchub.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"db_error":   err.Error(),
				"ws_clients": stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"db":         "ok",
			"ws_clients": stats.WSClients,
		})
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authEnabled := authCfg.OwnerConfigured()
	if authEnabled {
		if err := auth.EnsureOwner(context.Background(), authRepo, authCfg); err != nil {
			log.Fatalf("owner bootstrap failed: %v", err)
		}
	}
	authHandler := auth.NewHandler(authRepo, tokenSvc, authEnabled)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Parsing
	proc := processor.New(parser.DefaultRegistry())
	fetcher := importer.NewFetcher(importer.FetchTimeout)
	importHandler := importer.NewHandler(proc, fetcher, !srvCfg.IsProduction())
	importHandler.RegisterRoutes(router.Group("/api"))

	// Events store: reads public, mutations behind auth when configured
	eventStore := store.New(store.NewSQLiteStorage(db))
	eventsHandler := events.NewHandler(eventStore, hub)
	eventsHandler.RegisterReadRoutes(router.Group("/api"))

	protected := router.Group("/api")
	protected.Use(auth.Middleware(tokenSvc, authRepo, authEnabled))
	eventsHandler.RegisterWriteRoutes(protected)

	httpSrv := &http.Server{
		Addr:    srvCfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", srvCfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("server stopped")
}
