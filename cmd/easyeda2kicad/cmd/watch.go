package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/desktop"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/metrics"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/panel"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/proc"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/schedule"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/ui"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/watcher"
)

var pollInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Attach import panels to KiCad schematic editors",
	Long: `Watch the desktop for KiCad schematic editor windows and open an import
panel next to each of them. Panels close when their editor closes.

Window enumeration uses wmctrl and needs an X11 session.

Examples:
  easyeda2kicad-companion watch
  easyeda2kicad-companion watch --interval 5s
  EASYEDA2KICAD_METRICS_ADDR=:9464 easyeda2kicad-companion watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("interval") {
			cfg.PollInterval = pollInterval
		}
		// ui.Main exits the process, so PersistentPostRun never runs.
		ui.Main(func() int {
			return exitStatus(runWatch())
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&pollInterval, "interval", 0, "window scan interval (default 2s)")
}

// exitStatus logs a watch failure and flushes the logger before the process
// exits with the returned status.
func exitStatus(err error) int {
	status := 0
	if err != nil {
		logger.Error("watch stopped", zap.Error(err))
		status = 1
	}
	_ = logger.Sync()
	return status
}

func runWatch() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := proc.ExecRunner{}
	importer := newImporter(runner)

	loop := ui.NewLoop(logger)
	companions := ui.NewCompanions(ctx, loop, logger)
	host := desktop.NewHost(ctx, desktop.NewLister(runner), companions, ui.IsCompanionTitle, logger)
	w := watcher.New(host, func(watcher.Window) *panel.Panel {
		return panel.New(importer, logger)
	}, logger)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metrics.Router(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer srv.Close()
		logger.Info("serving metrics", zap.String("addr", cfg.MetricsAddr))
	}

	go loop.Run(ctx)

	logger.Info("watching for schematic editors", zap.Duration("interval", cfg.PollInterval))
	err := schedule.Every(ctx, schedule.Real(), cfg.PollInterval, func() {
		if err := loop.Do(ctx, w.Pass); err != nil && ctx.Err() == nil {
			logger.Warn("watcher pass not run", zap.Error(err))
		}
	})
	companions.CloseExcept(nil)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
