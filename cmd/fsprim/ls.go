package main

import (
	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
	"github.com/mutagen-io/fsprim/pkg/must"
)

// lsMain is the entry point for the ls command.
func lsMain(_ *cobra.Command, arguments []string) error {
	// Determine the directory to list.
	path := "."
	if len(arguments) == 1 {
		path = arguments[0]
	}

	// Start iteration.
	var iterator *filesystem.DirectoryIterator
	var err error
	if lsConfiguration.match != "" {
		iterator, err = filesystem.IterateMatching(path, lsConfiguration.match)
	} else {
		iterator, err = filesystem.Iterate(path)
	}
	if err != nil {
		return err
	}
	defer must.Close(iterator, logger)

	// Print entries.
	for iterator.Next() {
		if lsConfiguration.full {
			cmd.Println(iterator.Path())
		} else {
			cmd.Println(iterator.Name())
		}
	}
	return iterator.Err()
}

// lsCommand is the ls command.
var lsCommand = &cobra.Command{
	Use:   "ls [<directory>]",
	Short: "List directory contents in native order",
	Args:  cobra.MaximumNArgs(1),
	Run:   cmd.Mainify(lsMain),
}

// lsConfiguration stores configuration for the ls command.
var lsConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// match is an optional pattern that entry names must match.
	match string
	// full indicates that full entry paths should be printed.
	full bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := lsCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&lsConfiguration.help, "help", "h", false, "Show help information")

	// Wire up listing flags.
	flags.StringVarP(&lsConfiguration.match, "match", "m", "", "Only list names matching a glob pattern")
	flags.BoolVarP(&lsConfiguration.full, "full", "f", false, "Print full entry paths")
}
