package main

import (
	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

// rmMain is the entry point for the rm command.
func rmMain(_ *cobra.Command, arguments []string) error {
	for _, path := range arguments {
		if err := filesystem.Remove(path, rmConfiguration.ignoreMissing); err != nil {
			return err
		}
	}
	return nil
}

// rmCommand is the rm command.
var rmCommand = &cobra.Command{
	Use:   "rm <path>...",
	Short: "Remove files and empty directories",
	Args:  cobra.MinimumNArgs(1),
	Run:   cmd.Mainify(rmMain),
}

// rmConfiguration stores configuration for the rm command.
var rmConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// ignoreMissing indicates that missing paths aren't an error.
	ignoreMissing bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := rmCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rmConfiguration.help, "help", "h", false, "Show help information")

	// Wire up removal flags.
	flags.BoolVarP(&rmConfiguration.ignoreMissing, "ignore-missing", "f", false, "Don't fail on missing paths")
}
