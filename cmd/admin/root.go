package main

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// dbOpener connects to the configured database. applySchema brings the
// schema up to date first; migration commands pass false.
type dbOpener func(applySchema bool) (*gorm.DB, error)

func newRootCmd(open dbOpener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "admin",
		Short:         "Yatube administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		newMigrateCmd(open),
		newUserCmd(open),
		newGroupCmd(open),
		newSeedCmd(open),
	)
	return rootCmd
}
