package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

// sameMain is the entry point for the same command.
func sameMain(_ *cobra.Command, arguments []string) error {
	same, err := filesystem.SamePath(arguments[0], arguments[1])
	if err != nil {
		return err
	}
	cmd.Println(same)
	if !same && sameConfiguration.exitCode {
		return errors.New("paths refer to different entities")
	}
	return nil
}

// sameCommand is the same command.
var sameCommand = &cobra.Command{
	Use:   "same <path> <path>",
	Short: "Check whether two paths refer to the same entity",
	Args:  cobra.ExactArgs(2),
	Run:   cmd.Mainify(sameMain),
}

// sameConfiguration stores configuration for the same command.
var sameConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// exitCode indicates that a mismatch should be reported as a failure.
	exitCode bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := sameCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&sameConfiguration.help, "help", "h", false, "Show help information")

	// Wire up comparison flags.
	flags.BoolVarP(&sameConfiguration.exitCode, "exit-code", "e", false, "Exit with an error if the paths differ")
}
