package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/Aghostraa/task-extractor-app/internal/config"
	"github.com/Aghostraa/task-extractor-app/internal/prefs"
	"github.com/Aghostraa/task-extractor-app/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the task API server",
	Long: `Start the task API server.

Examples:
  taskdeck serve
  taskdeck serve --addr :3001`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if cfg.AnthropicAPIKey == "" {
		log.Printf("warning: ANTHROPIC_API_KEY not set, extraction requests will fail")
	}

	engine, store, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	prefStore, err := prefs.NewStore(cfg.PrefsPath)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      c.Handler(web.NewServer(engine, prefStore).Handler()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second, // extraction calls can take a while
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Println("Shutdown complete.")
	}

	return nil
}
