package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

// mvMain is the entry point for the mv command.
func mvMain(command *cobra.Command, arguments []string) error {
	// Compute the policy, starting from the configured default.
	policy := filesystem.DefaultRenamePolicy
	flags := command.Flags()
	if flags.Changed("attempts") {
		policy.Attempts = mvConfiguration.attempts
	}
	if flags.Changed("delay") {
		policy.Delay = time.Duration(mvConfiguration.delay)
	}

	// Perform the rename.
	return filesystem.RenameWithPolicy(policy, arguments[0], arguments[1])
}

// mvCommand is the mv command.
var mvCommand = &cobra.Command{
	Use:   "mv <source> <destination>",
	Short: "Rename an entry, replacing any existing destination",
	Args:  cobra.ExactArgs(2),
	Run:   cmd.Mainify(mvMain),
}

// mvConfiguration stores configuration for the mv command.
var mvConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// attempts overrides the configured rename attempt count.
	attempts int
	// delay overrides the configured rename retry delay.
	delay durationValue
}

func init() {
	// Grab a handle for the command line flags.
	flags := mvCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&mvConfiguration.help, "help", "h", false, "Show help information")

	// Wire up retry flags.
	flags.IntVar(&mvConfiguration.attempts, "attempts", 0, "Override the number of attempts on sharing violations")
	flags.Var(&mvConfiguration.delay, "delay", "Override the delay between attempts (e.g. 10ms)")
}
