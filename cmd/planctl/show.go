package main

import (
	"github.com/spf13/cobra"

	"github.com/simaogato/retireplan-backend/internal/adapter/wire"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a saved plan and its calculations",
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, _ []string) error {
	key, err := planKey()
	if err != nil {
		return err
	}

	service, closeStore, err := openPlanner(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	snapshot, err := service.Load(cmd.Context(), key)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), planView{
		Plan:     wire.FromSnapshot(snapshot),
		Analysis: wire.Analyze(snapshot),
	})
}
