package cli

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/auteur/internal/server"
	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/observability"
	"github.com/matzehuels/auteur/pkg/session"
	"github.com/matzehuels/auteur/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may take on exit.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project's canvas and editing API over HTTP",
		Long: `Serve opens the project and exposes it over HTTP: the canvas at /, the JSON API
under /api and Prometheus metrics at /metrics. Changes are saved on the
[server] autosave schedule and on exit. Edits to a project file made by other
tools are picked up while serving.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, !noWatch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the project when its file changes")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, watch bool) error {
	cfg := c.config().Server
	if addr == "" {
		addr = cfg.Addr
	}
	logger := loggerFromContext(ctx)

	ws, h, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	sess := session.New(ws, h, session.WithLogger(logger))
	opts := []server.Option{
		server.WithRunner(runner),
		server.WithLogger(logger),
		server.WithSave(func(ctx context.Context, _ *board.Project) error { return sess.Save(ctx) }),
	}
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		observability.NewMetrics(reg).Install()
		defer observability.Reset()
		opts = append(opts, server.WithMetrics(reg))
	}

	if cfg.Autosave != "" {
		stop, err := sess.Autosave(ctx, cfg.Autosave)
		if err != nil {
			return err
		}
		defer stop()
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      server.New(ws, opts...),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	if watch {
		if fs, id, ok := c.watchTarget(h); ok {
			g.Go(func() error {
				return fs.Watch(gctx, id, func(p *board.Project, err error) {
					if err != nil {
						logger.Warn("reload failed", "err", err)
						return
					}
					sess.Reload(p)
				})
			})
		}
	}

	printSuccess("Serving %s", StyleValue.Render(ws.Snapshot().Name))
	printDetail("%s", StyleLink.Render("http://"+addr))
	if cfg.Metrics {
		printDetail("metrics at %s", StyleLink.Render("http://"+addr+"/metrics"))
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchTarget returns a file store and id for watching h. Only projects kept
// in files can be watched.
func (c *CLI) watchTarget(h *projectHandle) (*store.FileStore, string, bool) {
	if h.store != nil {
		fs, ok := h.store.(*store.FileStore)
		return fs, h.ref, ok
	}
	fs, err := store.NewFileStore(filepath.Dir(h.ref), store.FormatFromPath(h.ref), store.WithGrid(c.config().Grid))
	if err != nil {
		c.Logger.Debug("not watching project file", "err", err)
		return nil, "", false
	}
	base := filepath.Base(h.ref)
	return fs, strings.TrimSuffix(base, filepath.Ext(base)), true
}
