package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lumiere-api/config"
	"github.com/yeremiapane/lumiere-api/database"
	"github.com/yeremiapane/lumiere-api/router"
	"github.com/yeremiapane/lumiere-api/utils"
)

func main() {
	seed := flag.Bool("seed", false, "replace the menu with the built-in dishes and exit")
	admin := flag.String("admin", "", "promote the registered user with this email to admin and exit")
	flag.Parse()

	cfg, warnings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	for _, w := range warnings {
		utils.InfoLogger.Warn(w)
	}

	db, err := database.Open(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if *seed || *admin != "" {
		if *seed {
			if _, err := database.SeedMenu(db); err != nil {
				utils.ErrorLogger.Fatalf("Failed to seed menu: %v", err)
			}
		}
		if *admin != "" {
			if _, err := database.PromoteAdmin(db, *admin); err != nil {
				utils.ErrorLogger.Fatalf("Failed to promote admin: %v", err)
			}
		}
		return
	}

	gin.SetMode(cfg.GinMode)

	deps := router.NewDependencies(cfg, db)
	deps.Carts.Start()
	defer deps.Carts.Stop()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router.SetupRouter(deps),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.InfoLogger.WithField("env", cfg.Env).Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.WithError(err).Error("Graceful shutdown failed")
	}
}
