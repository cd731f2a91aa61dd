package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/anuvad-app/anuvad/internal/config"
	"github.com/anuvad-app/anuvad/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		Long: `Starts the Anuvad web interface on the specified port.

The web interface lets you upload an image containing Hindi text, extract
the text with a vision-capable LLM, and translate it into English or Bengali.`,
		Example: `  # Start server on default port 8888
  anuvad serve

  # Start server on custom port
  anuvad serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			provider, model, err := newProvider(cfg)
			if err != nil {
				return err
			}

			handler := handlers.New(handlers.Options{
				Provider:     provider,
				ProviderName: cfg.Provider,
				Model:        model,
			})

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/translate", handler.HandleTranslate)
			mux.HandleFunc("/api/state", handler.HandleState)
			mux.HandleFunc("/api/languages", handler.HandleLanguages)
			mux.HandleFunc("/api/runs", handler.HandleRuns)
			mux.HandleFunc("/api/runs/", handler.HandleRunDetail)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Anuvad interface available", "addr", addr, "url", "http://localhost"+addr, "provider", cfg.Provider, "model", model)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
