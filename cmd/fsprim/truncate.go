package main

import (
	"errors"
	"math"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

// truncateMain is the entry point for the truncate command.
func truncateMain(command *cobra.Command, arguments []string) error {
	if !command.Flags().Changed("size") {
		return errors.New("size must be specified")
	} else if uint64(truncateConfiguration.size) > math.MaxInt64 {
		return errors.New("size too large")
	}
	size := int64(truncateConfiguration.size)
	for _, path := range arguments {
		if err := filesystem.Resize(path, size); err != nil {
			return err
		}
	}
	return nil
}

// truncateCommand is the truncate command.
var truncateCommand = &cobra.Command{
	Use:   "truncate --size <size> <path>...",
	Short: "Shrink or extend files to a specified size",
	Args:  cobra.MinimumNArgs(1),
	Run:   cmd.Mainify(truncateMain),
}

// truncateConfiguration stores configuration for the truncate command.
var truncateConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// size is the target size.
	size byteSizeValue
}

func init() {
	// Grab a handle for the command line flags.
	flags := truncateCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&truncateConfiguration.help, "help", "h", false, "Show help information")

	// Wire up size flags.
	flags.VarP(&truncateConfiguration.size, "size", "s", "Specify the target size (e.g. 0, 512, 4KiB)")
}
