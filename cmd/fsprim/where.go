package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

// whereMain is the entry point for the where command.
func whereMain(_ *cobra.Command, _ []string) error {
	// Query the working directory.
	workingDirectory, err := filesystem.CurrentWorkingDirectory()
	if err != nil {
		return err
	}

	// Query the executable path. An empty result means it couldn't be
	// determined.
	executable := filesystem.MainExecutablePath(os.Args[0], 0)
	if executable == "" {
		executable = "<unknown>"
	}

	// Query the home directory.
	home, ok := filesystem.HomeDirectory()
	if !ok {
		home = "<unknown>"
	}

	// Query the temporary directory, preferring any configured override.
	temporary := filesystem.DefaultUniqueFactory.TemporaryDirectory
	if temporary == "" {
		if temporary, err = filesystem.TemporaryDirectory(); err != nil {
			return err
		}
	}

	// Print the results.
	cmd.Println("Working directory:", workingDirectory)
	cmd.Println("Executable:", executable)
	cmd.Println("Home directory:", home)
	cmd.Println("Temporary directory:", temporary)

	// Success.
	return nil
}

// whereCommand is the where command.
var whereCommand = &cobra.Command{
	Use:   "where",
	Short: "Show well-known process and user locations",
	Args:  cmd.DisallowArguments,
	Run:   cmd.Mainify(whereMain),
}

// whereConfiguration stores configuration for the where command.
var whereConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := whereCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&whereConfiguration.help, "help", "h", false, "Show help information")
}
