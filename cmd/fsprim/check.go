package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

// checkMain is the entry point for the check command.
func checkMain(_ *cobra.Command, arguments []string) error {
	var failed bool
	for _, path := range arguments {
		exists, err := filesystem.Exists(path)
		if err != nil {
			return err
		}
		writable := exists && filesystem.CanWrite(path)
		executable := exists && filesystem.CanExecute(path)
		cmd.Println(path+":", "exists:", exists, "writable:", writable, "executable:", executable)
		switch {
		case !exists:
			failed = true
		case checkConfiguration.writable && !writable:
			failed = true
		case checkConfiguration.executable && !executable:
			failed = true
		}
	}
	if failed {
		return errors.New("one or more checks failed")
	}
	return nil
}

// checkCommand is the check command.
var checkCommand = &cobra.Command{
	Use:   "check <path>...",
	Short: "Check existence and accessibility of paths",
	Args:  cobra.MinimumNArgs(1),
	Run:   cmd.Mainify(checkMain),
}

// checkConfiguration stores configuration for the check command.
var checkConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// writable indicates that paths must be writable.
	writable bool
	// executable indicates that paths must be executable.
	executable bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := checkCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&checkConfiguration.help, "help", "h", false, "Show help information")

	// Wire up requirement flags.
	flags.BoolVarP(&checkConfiguration.writable, "writable", "w", false, "Require paths to be writable")
	flags.BoolVarP(&checkConfiguration.executable, "executable", "x", false, "Require paths to be executable")
}
