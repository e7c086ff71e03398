package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/retireplan-backend/internal/adapter/repository"
	"github.com/simaogato/retireplan-backend/internal/adapter/wire"
	"github.com/simaogato/retireplan-backend/internal/usecase/seeder"
)

var flagSeedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the empty slots of a plan from a plan file",
	Long: `Write every slot of the plan file whose stored counterpart is empty.

Slots that already hold data are left alone, so seeding the same key twice is safe.
Without --file the default plan is seeded.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&flagSeedFile, "file", "f", "", "Plan file (.json, .toml, .yaml)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	key, err := planKey()
	if err != nil {
		return err
	}

	var plan wire.Plan
	if flagSeedFile != "" {
		if plan, err = wire.ReadPlanFile(flagSeedFile); err != nil {
			return err
		}
	}

	backend, err := repository.Open(cmd.Context(), cfg.Store, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	seeded, err := seeder.NewPlanSeeder(backend.Repositories).Seed(cmd.Context(), key, plan.Snapshot())
	if err != nil {
		return err
	}

	if len(seeded) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "plan %s already complete\n", key)
		return nil
	}
	for _, slot := range seeded {
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", slot)
	}
	return nil
}
