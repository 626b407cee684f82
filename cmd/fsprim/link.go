package main

import (
	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

// linkMain is the entry point for the link command.
func linkMain(_ *cobra.Command, arguments []string) error {
	return filesystem.CreateHardLink(arguments[0], arguments[1])
}

// linkCommand is the link command.
var linkCommand = &cobra.Command{
	Use:   "link <existing> <new>",
	Short: "Create a hard link to an existing file",
	Args:  cobra.ExactArgs(2),
	Run:   cmd.Mainify(linkMain),
}

// linkConfiguration stores configuration for the link command.
var linkConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := linkCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&linkConfiguration.help, "help", "h", false, "Show help information")
}
