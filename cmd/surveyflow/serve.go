package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careerloop/surveyflow"
	"github.com/careerloop/surveyflow/internal/adapters/httpapi"
	"github.com/careerloop/surveyflow/internal/logging"
	redisadapter "github.com/careerloop/surveyflow/pkg/adapters/redis"
	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the survey HTTP server",
	Long:  `Starts the surveyflow engine in server mode, exposing the widget JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		catalogue, _ := cmd.Flags().GetString("catalogue")
		debug, _ := cmd.Flags().GetBool("debug")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		sessionTTL, _ := cmd.Flags().GetDuration("session-ttl")

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		engineOpts := []surveyflow.Option{
			surveyflow.WithLogger(logger),
		}
		if catalogue != "" {
			engineOpts = append(engineOpts, surveyflow.WithCatalogue(catalogue))
		}

		// With Redis, sessions survive restarts and replicas stay consistent.
		if redisAddr != "" {
			client := backend.NewClient(&backend.Options{Addr: redisAddr})
			if err := client.Ping(cmd.Context()).Err(); err != nil {
				fmt.Printf("Error connecting to redis at %s: %v\n", redisAddr, err)
				os.Exit(1)
			}

			storeOpts := []redisadapter.Option{}
			if sessionTTL > 0 {
				storeOpts = append(storeOpts, redisadapter.WithTTL(sessionTTL))
			}
			engineOpts = append(engineOpts,
				surveyflow.WithStore(redisadapter.NewFromClient(client, storeOpts...)),
				surveyflow.WithLocker(redisadapter.NewLocker(client, "surveyflow:session:")),
			)
		}

		eng, err := surveyflow.New(engineOpts...)
		if err != nil {
			fmt.Printf("Error initializing surveyflow: %v\n", err)
			os.Exit(1)
		}

		handler := httpapi.NewHandler(eng.Manager(), prometheus.DefaultRegisterer,
			httpapi.WithLogger(logger))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Surveyflow Server on %s\n", srv.Addr)
			fmt.Printf("Surveys: %v (default: %s)\n", eng.Registry().IDs(), eng.Registry().DefaultID())
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Surveyflow Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session storage (e.g. localhost:6379)")
	serveCmd.Flags().Duration("session-ttl", 0, "Expiration for idle sessions in Redis (0 = keep forever)")
}
