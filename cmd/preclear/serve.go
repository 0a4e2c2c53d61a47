package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solardome/preclear-demo/internal/config"
	"github.com/solardome/preclear-demo/internal/generator"
	"github.com/solardome/preclear-demo/internal/logging"
	"github.com/solardome/preclear-demo/internal/policy"
	"github.com/solardome/preclear-demo/internal/report"
	"github.com/solardome/preclear-demo/internal/server"
	"github.com/solardome/preclear-demo/internal/store"
)

type serveFlags struct {
	configPath string
	addr       string
	maxReports int
	seed       uint64
	staticDir  string
	policyPath string
	logLevel   string
	runLog     string
}

func newServeCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(cmd, f)
			if err != nil {
				return err
			}

			logger, cleanup, err := logging.New(logging.Options{Level: cfg.Log.Level, RunLogPath: cfg.Log.RunLog})
			if err != nil {
				return err
			}
			defer cleanup()

			srv, err := buildServer(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return srv.Run(ctx)
		},
	}

	f.register(cmd)
	return cmd
}

func (f *serveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to server config YAML")
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().IntVar(&f.maxReports, "max-reports", 0, "number of reports kept in history (overrides config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "fix the random source for reproducible demos (overrides config)")
	cmd.Flags().StringVar(&f.staticDir, "static-dir", "", "directory served under /static (overrides config)")
	cmd.Flags().StringVar(&f.policyPath, "policy", "", "path to scoring policy YAML (overrides config)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	cmd.Flags().StringVar(&f.runLog, "run-log", "", "append JSON log lines to this file (overrides config)")
}

// loadServeConfig applies explicitly set flags on top of the config file.
func loadServeConfig(cmd *cobra.Command, f serveFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if flags.Changed("max-reports") {
		cfg.MaxReports = f.maxReports
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("static-dir") {
		cfg.StaticDir = f.staticDir
	}
	if flags.Changed("policy") {
		cfg.PolicyPath = f.policyPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("run-log") {
		cfg.Log.RunLog = f.runLog
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "flags")
	}
	return cfg, nil
}

func buildServer(cfg config.Config, logger *zap.Logger) (*server.Server, error) {
	pol, err := policy.Load(cfg.PolicyPath)
	if err != nil {
		return nil, err
	}

	var opts []generator.Option
	if cfg.Seed != 0 {
		opts = append(opts, generator.WithSeed(cfg.Seed))
	}
	gen := generator.New(pol, opts...)

	renderOpts := report.DefaultRenderOptions()
	renderOpts.MaxReports = cfg.MaxReports
	renderOpts.SOCPreviewLimit = pol.SOCNoise.PreviewLimit
	renderOpts.CloudDemoURL = cfg.CloudDemoURL
	renderOpts.LogoPath = cfg.LogoPath

	logger.Info("configuration loaded",
		zap.Stringer("config", cfg),
		zap.String("policy_schema", pol.SchemaVersion),
	)

	return server.New(server.Deps{
		Config:    cfg,
		Logger:    logger,
		Store:     store.New(cfg.MaxReports),
		Generator: gen,
		Renderer:  report.NewRenderer(renderOpts),
	}), nil
}
