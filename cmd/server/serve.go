package main

import (
	"context"
	"errors"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hovertrans/backend/internal/handler"
	transport "hovertrans/backend/internal/http"
	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/scheduler"
	"hovertrans/backend/internal/selection"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP backend",
		Long: `Serve starts the HTTP backend used by the extension's content scripts and
review page. It stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				opts.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from HOVERTRANS_ADDR)")
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg := opts.cfg

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	srv, err := a.newServer()
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.bus.Close(context.Background()); err != nil {
			logger.Warn("bus close failed", "module", "server", "action", "stop", "resource", "bus", "result", "failed", "error", err)
		}
	}()
	defer srv.dispatcher.Close()

	router := transport.NewRouter(
		handler.NewTabHandler(srv.hub, handler.DefaultKeepAlive),
		handler.NewMessageHandler(srv.dispatcher),
		handler.NewTranslationHandler(a.translator, a.settings, a.history, a.catalog),
		handler.NewSettingsHandler(a.settings),
		handler.NewEventHandler(srv.bus, handler.DefaultKeepAlive),
		handler.NewSelectionHandler(srv.hub, func(tabID string) selection.Sender {
			return srv.dispatcher.SenderFor(tabID)
		}, srv.bus),
		transport.RouterOptions{
			AllowedOrigins: cfg.AllowedOrigins,
			StaticDir:      cfg.StaticDir,
		},
	)

	sched := scheduler.New(srv.hub, cfg.TabTTL, 0)
	sched.Start()
	defer sched.Stop()

	g, gctx := errgroup.WithContext(ctx)
	// Request contexts end with the server so event streams close on shutdown.
	router.Server.BaseContext = func(net.Listener) context.Context { return gctx }
	g.Go(func() error {
		logger.Info("server listening", "module", "server", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "store", cfg.Store, "transport", cfg.Transport, "locale", a.catalog.Locale())
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "module", "server", "action", "stop", "resource", "http", "result", "ok", "busy_workers", srv.dispatcher.Running())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
