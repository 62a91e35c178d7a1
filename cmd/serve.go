package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sciencelabshs/neonlink/api"
	"github.com/sciencelabshs/neonlink/auth"
	"github.com/sciencelabshs/neonlink/config"
	"github.com/sciencelabshs/neonlink/database"
	"github.com/sciencelabshs/neonlink/scheduler"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the neonlink server",
	Long:  `Start the neonlink server to handle the link dashboard, user accounts and sessions.`,
	Example: `neonlink serve --config config.yml
neonlink serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sessions := auth.NewRegistry(cfg.Session.TTL())
	authService, err := auth.NewService(ctx, db, auth.NewBcryptHasher(), sessions, cfg.RegistrationEnabled)
	if err != nil {
		log.Fatalf("failed to create auth service: %v", err)
	}

	server, err := api.New(cfg, authService, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	sched, err := scheduler.New()
	if err != nil {
		log.Fatalf("failed to create scheduler: %v", err)
	}
	if err := sched.AddJob("session-reaper", cfg.Session.ReapInterval, func(ctx context.Context) error {
		_, err := authService.ReapStaleSessions(ctx)
		return err
	}); err != nil {
		log.Fatalf("failed to schedule session reaper: %v", err)
	}
	sched.Start()

	// Start the API server in a goroutine
	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("neonlink started successfully")
	<-c
	log.Info("shutting down gracefully...")

	cancel()
	if err := sched.Stop(); err != nil {
		log.Error("failed to stop scheduler", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down server", "error", err)
	}
}
