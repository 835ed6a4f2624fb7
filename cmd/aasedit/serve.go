package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/aasedit"
	"github.com/aretw0/aasedit/internal/presentation/tui"
	httpAdapter "github.com/aretw0/aasedit/pkg/adapters/http"
	redisAdapter "github.com/aretw0/aasedit/pkg/adapters/redis"
	"github.com/aretw0/aasedit/pkg/observability"
	"github.com/aretw0/aasedit/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP editing server",
		Long: `Serves editor sessions over a JSON API described by an OpenAPI document.
Applied commits are streamed to SSE clients and, with --redis-addr, published
to a Redis channel. Redis also serializes edits across replicas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetString("port")

			mgr, reg, err := buildSessions(cmd)
			if err != nil {
				return err
			}
			streams := mgr.streams
			handler, err := httpAdapter.NewHandler(mgr.Manager,
				httpAdapter.WithStreams(streams),
				httpAdapter.WithGatherer(reg),
				httpAdapter.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			if tui.IsTerminal(os.Stderr) {
				tui.PrintBanner(cmd.ErrOrStderr())
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("Starting aasedit Server", "address", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				return fmt.Errorf("server error: %w", err)
			case <-cmd.Context().Done():
				logger.Info("Start shutdown")

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					logger.Error("Graceful shutdown did not complete", "err", err)
					if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return fmt.Errorf("error killing server: %w", err)
					}
				}
				logger.Info("aasedit Server stopped gracefully")
				return nil
			}
		},
	}
	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	addRedisFlags(cmd)
	cmd.Flags().Duration("lock-ttl", session.DefaultLockTTL, "Expiry of distributed session locks")
	return cmd
}

func addRedisFlags(cmd *cobra.Command) {
	cmd.Flags().String("redis-addr", "", "Redis address (host:port); enables commit publishing and distributed locks")
	cmd.Flags().String("redis-password", "", "Redis password")
	cmd.Flags().Int("redis-db", 0, "Redis database")
	cmd.Flags().String("redis-channel", redisAdapter.DefaultChannel, "Redis channel for commit notices")
}

// servedSessions bundles the session manager with the stream manager its
// editors publish to.
type servedSessions struct {
	*session.Manager
	streams *httpAdapter.StreamManager
}

// buildSessions wires metrics, logging hooks, SSE streams and the optional
// Redis publisher and locker into a session manager.
func buildSessions(cmd *cobra.Command) (*servedSessions, *prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)
	streams := httpAdapter.NewStreamManager()

	editorOpts := []aasedit.Option{
		aasedit.WithLogger(logger),
		aasedit.WithCommitHooks(observability.Combine(metrics.Hooks(), observability.LogHooks(logger))),
		aasedit.WithPublisher(streams),
	}
	mgrOpts := []session.Option{session.WithLogger(logger)}
	if ttl, err := cmd.Flags().GetDuration("lock-ttl"); err == nil {
		mgrOpts = append(mgrOpts, session.WithLockTTL(ttl))
	}

	client, channel, err := redisFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}
	if client != nil {
		editorOpts = append(editorOpts, aasedit.WithPublisher(redisAdapter.NewPublisher(client, redisAdapter.WithChannel(channel))))
		mgrOpts = append(mgrOpts, session.WithLocker(redisAdapter.NewLocker(client, "aasedit:")))
		logger.Info("Redis enabled", "channel", channel)
	}

	mgrOpts = append(mgrOpts, session.WithEditorOptions(editorOpts...))
	return &servedSessions{Manager: session.NewManager(mgrOpts...), streams: streams}, reg, nil
}
