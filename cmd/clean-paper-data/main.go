// Command clean-paper-data builds the cleaned EU paper products tables:
// real trade prices, apparent consumption and constant-USD GDP, written to
// one SQLite file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	baseYear   int
	outPath    string
	exportCSV  bool
	verbose    bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean-paper-data",
		Short: "Clean FAOSTAT paper trade and World Bank macro data for EU countries",
		Long: `clean-paper-data loads the FAOSTAT paper and paperboard table, the World Bank
GDP/deflator/exchange-rate/population table and the EU country reference table,
normalizes exchange rates to Euro terms, chains deflators to a base year and
writes real prices, apparent consumption and an EU aggregate to one SQLite file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg)

			log, err := newLogger(cfg.Log)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()

			out, err := run(cfg, log)
			if err != nil {
				log.Error("pipeline failed", zap.Error(err))
				return err
			}
			log.Info("done",
				zap.String("sqlite", out.SQLite),
				zap.String("profile", out.Profile),
				zap.Strings("csv", out.CSV),
			)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional TOML config file")
	cmd.PersistentFlags().IntVar(&baseYear, "base-year", 0, "Deflator base year (overrides config)")
	cmd.PersistentFlags().StringVar(&outPath, "out", "", "SQLite output path (overrides config)")
	cmd.PersistentFlags().BoolVar(&exportCSV, "csv", false, "Also write one CSV per output table")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Human-readable debug logging")
	return cmd
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("base-year") {
		cfg.BaseYear = baseYear
	}
	if flags.Changed("out") {
		cfg.Output.SQLite = outPath
	}
	if flags.Changed("csv") {
		cfg.Output.CSV = exportCSV
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbose = verbose
	}
}

func newLogger(cfg LogConfig) (*zap.Logger, error) {
	if cfg.Verbose {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zc.Build()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
