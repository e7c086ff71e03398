package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/retireplan-backend/internal/adapter/repository"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the store schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		storeCfg := cfg.Store
		storeCfg.Migrate = true

		backend, err := repository.Open(cmd.Context(), storeCfg, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		if err := backend.Health(cmd.Context()); err != nil {
			return fmt.Errorf("store unhealthy after migration: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s store is ready\n", backend.Driver)
		return nil
	},
}
