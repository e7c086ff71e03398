package main

import (
	"github.com/spf13/cobra"

	"github.com/simaogato/retireplan-backend/internal/adapter/wire"
)

var flagPlanFile string

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Evaluate a plan file without saving it",
	Long: `Evaluate a plan stored as JSON, TOML or YAML.

Slots missing from the file take their default values. Nothing is written to the store.`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVarP(&flagPlanFile, "file", "f", "", "Plan file (.json, .toml, .yaml)")
	_ = calcCmd.MarkFlagRequired("file")
}

func runCalc(cmd *cobra.Command, _ []string) error {
	plan, err := wire.ReadPlanFile(flagPlanFile)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), wire.Analyze(plan.Snapshot()))
}
