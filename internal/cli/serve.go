package cli

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fadiagram/pkg/cache"
	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/observability"
	"github.com/matzehuels/fadiagram/pkg/render/diagram"
	"github.com/matzehuels/fadiagram/pkg/server"
)

const shutdownTimeout = 10 * time.Second

// serveOpts holds everything runServe needs besides the listener.
type serveOpts struct {
	server   server.Config
	cache    cache.Cache // nil serves every request from the backend
	cacheTTL time.Duration
}

// serveCommand creates the serve command, which runs the HTTP renderer.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, cacheKind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer over HTTP",
		Long: `Serve the renderer over HTTP.

POST a definition to /render to receive the drawing, or to /payload for a
JSON display payload. Prometheus metrics are exposed at /metrics. Rendered
artifacts can be cached on disk or in Redis, see the [serve] section of the
configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Serve.Addr
			}
			if cmd.Flags().Changed("cache") {
				cfg.Serve.Cache = cacheKind
			}

			copts, ttl, err := cfg.Serve.CacheOptions()
			if err != nil {
				return err
			}
			store, err := cache.Open(cmd.Context(), copts)
			if err != nil {
				return err
			}
			defer store.Close()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "listen on %s", addr)
			}
			return c.runServe(cmd.Context(), ln, serveOpts{
				server:   server.Config{Defaults: cfg.Options()},
				cache:    store,
				cacheTTL: ttl,
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")
	cmd.Flags().StringVar(&cacheKind, "cache", "", "artifact cache: none, file, redis (default from config)")
	return cmd
}

// runServe serves on ln until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, ln net.Listener, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	hooks := observability.Multi(observability.NewPrometheusHooks(reg), logHooks{logger})

	backend := c.backend()
	if opts.cache != nil {
		backend = diagram.NewCachedBackend(backend, opts.cache, opts.cacheTTL).WithLogger(logger)
	}

	cfg := opts.server
	cfg.Logger = logger
	cfg.Gatherer = reg
	srv := &http.Server{
		Handler:           server.NewHandler(c.newRenderer(backend, hooks), cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	printInfo(c.out(), "Listening on http://%s", ln.Addr())

	select {
	case err := <-errc:
		return errors.Wrap(errors.ErrCodeInternal, err, "serve")
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return nil
}
