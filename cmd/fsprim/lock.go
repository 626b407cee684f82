package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem/locking"
	"github.com/mutagen-io/fsprim/pkg/must"
)

// lockMain is the entry point for the lock command.
func lockMain(_ *cobra.Command, arguments []string) error {
	// Create the locker.
	locker, err := locking.NewLocker(arguments[0], 0600)
	if err != nil {
		return err
	}
	defer must.Close(locker, logger)

	// Acquire the lock.
	if err := locker.Lock(!lockConfiguration.noWait); err != nil {
		return err
	}
	defer must.Unlock(locker, logger)
	logger.Infof("Acquired lock on %s", arguments[0])
	cmd.Println("Lock held, interrupt to release")

	// Hold the lock until termination is requested.
	ctx, stop := cmd.TerminationContext(context.Background())
	defer stop()
	<-ctx.Done()

	// Success.
	return nil
}

// lockCommand is the lock command.
var lockCommand = &cobra.Command{
	Use:   "lock <path>",
	Short: "Hold an exclusive lock on a file until interrupted",
	Args:  cobra.ExactArgs(1),
	Run:   cmd.Mainify(lockMain),
}

// lockConfiguration stores configuration for the lock command.
var lockConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// noWait indicates that acquisition shouldn't block.
	noWait bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := lockCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&lockConfiguration.help, "help", "h", false, "Show help information")

	// Wire up acquisition flags.
	flags.BoolVarP(&lockConfiguration.noWait, "no-wait", "n", false, "Fail immediately if the lock is held elsewhere")
}
