package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/simaogato/retireplan-backend/internal/adapter/repository"
	"github.com/simaogato/retireplan-backend/internal/adapter/wire"
	"github.com/simaogato/retireplan-backend/internal/config"
	"github.com/simaogato/retireplan-backend/internal/domain"
	"github.com/simaogato/retireplan-backend/internal/logging"
	"github.com/simaogato/retireplan-backend/internal/platform/metrics"
	"github.com/simaogato/retireplan-backend/internal/usecase/planner"
)

var (
	flagKey    string
	flagOutput string
	flagDriver string
	flagQuiet  bool
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Retirement plan CLI",
	Long:  "Inspect, edit and evaluate retirement plans: income, annuities and housing affordability.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if flagDriver != "" {
			loaded.Store.Driver = flagDriver
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		cfg = loaded

		var w io.Writer = os.Stderr
		if flagQuiet {
			w = io.Discard
		}
		logger = logging.NewWithWriter(w, cfg.Logging)
		return nil
	},
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagKey, "key", "k", domain.DefaultPlanKey.String(), "Plan key")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", wire.FormatJSON, "Output format: json, yaml or toml")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "Override the configured store driver")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress log output")

	rootCmd.AddCommand(calcCmd, showCmd, setCmd, migrateCmd)
}

// openPlanner is the shared store path used by every command that touches saved plans.
func openPlanner(ctx context.Context) (*planner.PlanService, func(), error) {
	backend, err := repository.Open(ctx, cfg.Store, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
	}
	service := planner.NewPlanService(backend.Repositories, logger, metrics.NewNoop())
	return service, func() { _ = backend.Close() }, nil
}

func planKey() (domain.PlanKey, error) {
	return domain.ParsePlanKey(flagKey)
}

func render(w io.Writer, v any) error {
	data, err := wire.EncodePlan(v, flagOutput)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if flagOutput == wire.FormatJSON {
		_, err = fmt.Fprintln(w)
	}
	return err
}

// planView is a plan together with everything derived from it
type planView struct {
	wire.Plan `yaml:",inline"`
	Analysis  wire.Analysis `json:"analysis" yaml:"analysis" toml:"analysis"`
}
