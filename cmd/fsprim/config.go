package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/configuration"
)

// configMain is the entry point for the config command.
func configMain(_ *cobra.Command, _ []string) error {
	// Save the effective configuration if requested.
	if configConfiguration.save {
		path := rootConfiguration.configurationPath
		if path == "" {
			var err error
			if path, err = configuration.DefaultPath(); err != nil {
				return err
			}
		}
		if err := effectiveConfiguration.Save(path, logger); err != nil {
			return errors.Wrap(err, "unable to save configuration")
		}
		cmd.Println("Configuration saved to", path)
		return nil
	}

	// Otherwise print it.
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(effectiveConfiguration); err != nil {
		return errors.Wrap(err, "unable to encode configuration")
	}
	return encoder.Close()
}

// configCommand is the config command.
var configCommand = &cobra.Command{
	Use:   "config",
	Short: "Show or save the effective configuration",
	Args:  cmd.DisallowArguments,
	Run:   cmd.Mainify(configMain),
}

// configConfiguration stores configuration for the config command.
var configConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// save indicates that the effective configuration should be written to
	// the configuration file.
	save bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := configCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&configConfiguration.help, "help", "h", false, "Show help information")

	// Wire up output flags.
	flags.BoolVarP(&configConfiguration.save, "save", "s", false, "Save the effective configuration to the configuration file")
}
