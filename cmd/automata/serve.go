package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aretw0/automata"
	httpAdapter "github.com/aretw0/automata/internal/adapters/http"
	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [machine-file]...",
	Short: "Start the HTTP server",
	Long: `Starts the engine as a JSON/text API over HTTP. Machine files given as
arguments are uploaded before the server starts; more can be uploaded with
PUT /machines/{name}. Prometheus metrics are served at /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		port := settings.HTTP.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		metrics := observability.NewMetrics()
		engine, logger, err := cli.NewEngine(settings, metrics)
		if err != nil {
			fmt.Printf("Error initializing automata: %v\n", err)
			os.Exit(1)
		}
		for _, path := range args {
			if m, err := engine.UploadFile(cmd.Context(), path); m == nil {
				fmt.Printf("Error loading machine: %v\n", err)
				os.Exit(1)
			}
		}

		handler := httpAdapter.NewHandler(engine,
			httpAdapter.WithMetrics(metrics.Handler()),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithVersion(automata.Version),
		)

		srv := &http.Server{
			Addr:              ":" + strconv.Itoa(port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Automata Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Automata Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides http.port)")
}
