package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
	"github.com/mutagen-io/fsprim/pkg/must"
)

// parseMapMode converts a mode name to a mapping mode.
func parseMapMode(name string) (filesystem.MapMode, error) {
	for _, mode := range []filesystem.MapMode{filesystem.MapReadOnly, filesystem.MapReadWrite, filesystem.MapPrivate} {
		if mode.String() == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown mapping mode: %s", name)
}

// mapMain is the entry point for the map command.
func mapMain(_ *cobra.Command, arguments []string) error {
	// Parse the mode.
	mode, err := parseMapMode(mapConfiguration.mode)
	if err != nil {
		return err
	}

	// Establish the mapping.
	region, err := filesystem.MapFile(arguments[0], mode, uint64(mapConfiguration.length), mapConfiguration.offset)
	if err != nil {
		return err
	}
	defer must.Close(region, logger)

	// Print mapping information if requested.
	if mapConfiguration.info {
		cmd.Println("Mode:", region.Mode())
		cmd.Println("Size:", humanize.IBytes(uint64(region.Size())))
		cmd.Println("Alignment:", humanize.IBytes(uint64(filesystem.Alignment())))
		return nil
	}

	// Otherwise copy the mapped contents to standard output.
	if _, err := io.Copy(os.Stdout, io.NewSectionReader(region, 0, int64(region.Size()))); err != nil {
		return err
	}
	return region.Flush()
}

// mapCommand is the map command.
var mapCommand = &cobra.Command{
	Use:   "map <path>",
	Short: "Memory map a file and print its contents",
	Args:  cobra.ExactArgs(1),
	Run:   cmd.Mainify(mapMain),
}

// mapConfiguration stores configuration for the map command.
var mapConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// mode is the mapping mode name.
	mode string
	// offset is the mapping offset.
	offset int64
	// length is the mapping length.
	length byteSizeValue
	// info indicates that mapping information should be printed instead of
	// contents.
	info bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := mapCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&mapConfiguration.help, "help", "h", false, "Show help information")

	// Wire up mapping flags.
	flags.StringVarP(&mapConfiguration.mode, "mode", "m", filesystem.MapReadOnly.String(), "Specify the mapping mode (read-only|read-write|private)")
	flags.Int64VarP(&mapConfiguration.offset, "offset", "o", 0, "Specify the mapping offset (a multiple of the alignment)")
	flags.VarP(&mapConfiguration.length, "length", "n", "Specify the mapping length (0 maps to the end of the file)")
	flags.BoolVarP(&mapConfiguration.info, "info", "i", false, "Print mapping information instead of contents")
}
