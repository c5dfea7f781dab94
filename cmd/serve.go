package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/essaylens/internal/logging"
	"github.com/abhisek/essaylens/internal/metrics"
	"github.com/abhisek/essaylens/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log, err := newLogger(cfg.Log, "info")
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		m := metrics.New()
		d, err := buildDeps(ctx, cmd, cfg, log, m)
		if err != nil {
			return err
		}
		defer d.Close()

		srv, err := server.New(server.Options{
			Addr:            cfg.Server.Addr,
			Analyzer:        d.service,
			Logger:          log,
			Metrics:         m,
			Version:         version,
			AnalysisTimeout: cfg.Server.AnalysisTimeout,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		})
		if err != nil {
			return err
		}

		log.Info("starting essaylens",
			logging.String("version", version),
			logging.String("scorer", cfg.Scorer.Mode),
			logging.String("cache", cfg.Cache.Backend))
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().String("model", "", "Model scorer: none or llm (overrides scorer.mode)")
}
