package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/intern-ease/internal/config"
	"github.com/jonathan/intern-ease/internal/export"
	"github.com/jonathan/intern-ease/internal/handoff"
	"github.com/jonathan/intern-ease/internal/logging"
	"github.com/jonathan/intern-ease/internal/rendering"
	"github.com/jonathan/intern-ease/internal/server"
	"github.com/jonathan/intern-ease/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort          int
	serveSecureCookies bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start an HTTP server with the applicant form, the results page, downloads and the JSON API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to config or PORT)")
	serveCmd.Flags().BoolVar(&serveSecureCookies, "secure-cookies", false, "Mark the session cookie Secure (set when served over HTTPS)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orchestrator, client, err := newOrchestrator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer client.Close()

	store, err := handoff.Open(ctx, handoff.Options{
		Backend:     cfg.HandoffBackend,
		RedisURL:    cfg.RedisURL,
		DatabaseURL: cfg.DatabaseURL,
		TTL:         cfg.TTL(),
	})
	if err != nil {
		return fmt.Errorf("failed to open %s handoff store: %w", cfg.HandoffBackend, err)
	}
	defer store.Close()
	go handoff.RunJanitor(ctx, store, 10*time.Minute, log)

	session, err := config.NewSessionConfig(cfg.SessionSecret)
	if err != nil {
		return err
	}
	if session.Ephemeral {
		log.Warn("SESSION_SECRET not set; sessions will not survive a restart")
	}

	renderer, err := rendering.NewRenderer()
	if err != nil {
		return err
	}
	pdf := export.NewPDFExporter(renderer, export.PDFOptions{ChromePath: cfg.ChromePath})
	defer pdf.Close()

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		RateLimit: ratelimit.NewConfig(cfg.RateLimitEnabled, cfg.RateLimitPerHour, cfg.RateLimitBurst, cfg.RateLimitWhitelist),
	}, server.Deps{
		Pipeline: orchestrator,
		Store:    store,
		Renderer: renderer,
		PDF:      pdf,
		Sessions: server.NewSessionService(session.SigningKey, cfg.TTL(), serveSecureCookies),
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Info("configuration loaded",
		"provider", cfg.LLMProvider,
		"handoff", cfg.HandoffBackend,
		"rate_limit", cfg.RateLimitEnabled,
	)
	return srv.Start()
}
