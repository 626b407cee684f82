package main

import (
	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

// mkdirMain is the entry point for the mkdir command.
func mkdirMain(_ *cobra.Command, arguments []string) error {
	for _, path := range arguments {
		if err := filesystem.CreateDirectory(path, mkdirConfiguration.ignoreExisting); err != nil {
			return err
		}
	}
	return nil
}

// mkdirCommand is the mkdir command.
var mkdirCommand = &cobra.Command{
	Use:   "mkdir <path>...",
	Short: "Create directories",
	Args:  cobra.MinimumNArgs(1),
	Run:   cmd.Mainify(mkdirMain),
}

// mkdirConfiguration stores configuration for the mkdir command.
var mkdirConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// ignoreExisting indicates that existing directories aren't an error.
	ignoreExisting bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := mkdirCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&mkdirConfiguration.help, "help", "h", false, "Show help information")

	// Wire up creation flags.
	flags.BoolVarP(&mkdirConfiguration.ignoreExisting, "ignore-existing", "p", false, "Don't fail on existing directories")
}
