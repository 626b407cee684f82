package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

// printStatus prints a status report for a single path.
func printStatus(path string, status filesystem.FileStatus) {
	cmd.Println(path + ":")
	cmd.Println("\tType:", status.Type)
	if !status.Exists() {
		return
	}
	cmd.Println("\tSize:", fmt.Sprintf("%s (%d bytes)", humanize.IBytes(status.Size), status.Size))
	if !status.ModificationTime.IsZero() {
		cmd.Println("\tModified:", fmt.Sprintf("%s (%s)",
			status.ModificationTime.Format("2006-01-02 15:04:05 MST"),
			humanize.Time(status.ModificationTime),
		))
	}
	cmd.Println("\tPermissions:", status.Permissions)
	cmd.Println("\tLinks:", status.LinkCount)
	cmd.Println("\tIdentity:", fmt.Sprintf("%x:%x:%x", status.ID.Device, status.ID.FileHigh, status.ID.FileLow))
}

// statMain is the entry point for the stat command.
func statMain(_ *cobra.Command, arguments []string) error {
	// Select the query.
	query := filesystem.Status
	if statConfiguration.noFollow {
		query = filesystem.LinkStatus
	}

	// Query and print each path. Nonexistent paths are reported rather than
	// treated as errors.
	for _, path := range arguments {
		status, err := query(path)
		if err != nil && !filesystem.IsNotFound(err) {
			return err
		}
		printStatus(path, status)
	}

	// Success.
	return nil
}

// statCommand is the stat command.
var statCommand = &cobra.Command{
	Use:   "stat <path>...",
	Short: "Show status information for paths",
	Args:  cobra.MinimumNArgs(1),
	Run:   cmd.Mainify(statMain),
}

// statConfiguration stores configuration for the stat command.
var statConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// noFollow indicates that symbolic links shouldn't be followed.
	noFollow bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := statCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&statConfiguration.help, "help", "h", false, "Show help information")

	// Wire up query flags.
	flags.BoolVarP(&statConfiguration.noFollow, "no-follow", "P", false, "Don't follow symbolic links")
}
