package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/config"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/db"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/events"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the recruitment REST endpoints and the public careers page API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply pending migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger, err := newLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if serveMigrate {
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}

	publisher, closePublisher, err := newPublisher(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer closePublisher()

	svc := recruitment.NewService(
		recruitment.NewPostgresStore(database),
		recruitment.WithPublisher(publisher),
		recruitment.WithOverridePolicy(cfg.StatusPolicy),
	)
	logger.Info("recruitment service configured", "status_override_policy", string(svc.Policy()), "events", cfg.RedisURL != "")

	srv := server.New(server.Config{
		Port:          cfg.Port,
		AllowedOrigin: cfg.AllowedOrigin,
		ApplyPerHour:  cfg.ApplyPerHour,
		Logger:        logger,
	}, svc, server.NewUserService(database, cfg.Password), server.NewJWTService(cfg.JWT))

	return srv.Start(ctx)
}

// newPublisher connects to Redis when redisURL is set. Without it events
// are dropped.
func newPublisher(ctx context.Context, redisURL string) (events.Publisher, func(), error) {
	if redisURL == "" {
		return events.Nop{}, func() {}, nil
	}
	rdb, err := events.NewRedisClient(ctx, redisURL)
	if err != nil {
		return nil, nil, err
	}
	return events.NewRedisPublisher(rdb), func() { _ = rdb.Close() }, nil
}
