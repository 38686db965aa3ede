package main

import (
	"github.com/spf13/cobra"

	"sharednotes/internal/sharing/storage"
	"sharednotes/pkg/logger"
)

func newMigrateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the storage schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := storage.Migrate(ctx, opts.cfg); err != nil {
				return err
			}
			logger.Log(ctx).Info(ctx, "storage schema is up to date")
			return nil
		},
	}
}
