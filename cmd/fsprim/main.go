package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/configuration"
	"github.com/mutagen-io/fsprim/pkg/filesystem"
	"github.com/mutagen-io/fsprim/pkg/fsprim"
	"github.com/mutagen-io/fsprim/pkg/logging"
	"github.com/mutagen-io/fsprim/pkg/must"
)

var (
	// effectiveConfiguration is the configuration loaded before any command
	// runs.
	effectiveConfiguration *configuration.Configuration
	// logger is the root logger. It's nil (and thus silent) until
	// configuration is loaded.
	logger *logging.Logger
)

// rootPersistentPreRun loads configuration, applies it to the filesystem
// package, and sets up logging.
func rootPersistentPreRun(_ *cobra.Command, _ []string) error {
	// Decide on color usage.
	cmd.DisableColorUnlessTerminal()

	// Load environment overrides from disk.
	if err := configuration.LoadEnvironmentFile(rootConfiguration.environmentFile); err != nil {
		return err
	}

	// Determine the configuration file path. If there's no home directory,
	// then only defaults and the environment are used.
	path := rootConfiguration.configurationPath
	if path == "" {
		if defaultPath, err := configuration.DefaultPath(); err != nil {
			cmd.Warning("unable to locate configuration file: " + err.Error())
		} else {
			path = defaultPath
		}
	}

	// Load configuration.
	if path != "" {
		var err error
		if effectiveConfiguration, err = configuration.Load(path); err != nil {
			return err
		}
	} else {
		effectiveConfiguration = configuration.Default()
	}
	if err := effectiveConfiguration.ApplyEnvironment(); err != nil {
		return errors.Wrap(err, "invalid environment configuration")
	}

	// Apply any log level override.
	if rootConfiguration.logLevel != "" {
		if _, ok := logging.NameToLevel(rootConfiguration.logLevel); !ok {
			return errors.Errorf("invalid log level: %s", rootConfiguration.logLevel)
		}
		effectiveConfiguration.Logging.Level = rootConfiguration.logLevel
	}

	// Set up logging.
	logger = logging.NewLogger(effectiveConfiguration.LogLevel(), os.Stderr)
	filesystem.SetLogger(logger.Sublogger("filesystem"))
	filesystem.DefaultUniqueFactory.Logger = logger.Sublogger("unique")

	// Apply configuration.
	effectiveConfiguration.Apply()
	logger.Debugf("Loaded configuration from %s", path)

	// Success.
	return nil
}

// rootMain is the entry point for the root command.
func rootMain(command *cobra.Command, _ []string) error {
	// If no commands were given, then print help information and bail. We don't
	// have to worry about warning about arguments being present here (which
	// would be incorrect usage) because arguments can't even reach this point
	// (they will be mistaken for subcommands and an error will be displayed).
	must.CommandHelp(command, logger)

	// Success.
	return nil
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:               "fsprim",
	Version:           fsprim.Version,
	Short:             "fsprim exercises portable filesystem primitives from the command line",
	PersistentPreRunE: rootPersistentPreRun,
	RunE:              rootMain,
	SilenceUsage:      true,
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// configurationPath is the path of the configuration file. If empty, the
	// default path in the home directory is used.
	configurationPath string
	// environmentFile is the path of a .env file to load.
	environmentFile string
	// logLevel overrides the configured log level.
	logLevel string
}

func init() {
	// Disable Cobra's command sorting behavior. By default, it sorts commands
	// alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Disable Cobra's use of mousetrap. This breaks daemon registration on
	// Windows because it tries to enforce that the CLI only be launched from
	// a console, which it's not when running automatically.
	cobra.MousetrapHelpText = ""

	// Set the template used by the version flag.
	rootCommand.SetVersionTemplate("fsprim version {{ .Version }}\n")

	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Add global flags.
	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.SortFlags = false
	persistentFlags.StringVarP(&rootConfiguration.configurationPath, "config", "c", "", "Specify the configuration file path")
	persistentFlags.StringVar(&rootConfiguration.environmentFile, "env-file", ".env", "Specify a .env file with environment overrides")
	persistentFlags.StringVarP(&rootConfiguration.logLevel, "log-level", "l", "", "Override the log level ("+strings.Join(logging.LevelNames(), "|")+")")

	// Register commands. We do this here (rather than in individual init
	// functions) so that we can control the order.
	rootCommand.AddCommand(
		mktempCommand,
		statCommand,
		sameCommand,
		lsCommand,
		mvCommand,
		rmCommand,
		mkdirCommand,
		linkCommand,
		truncateCommand,
		checkCommand,
		mapCommand,
		whereCommand,
		lockCommand,
		configCommand,
		versionCommand,
	)
}

func main() {
	// Execute the root command.
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
