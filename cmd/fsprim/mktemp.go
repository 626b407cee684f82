package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/fsprim/cmd"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
	"github.com/mutagen-io/fsprim/pkg/must"
)

// defaultTemplate is the template used when none is provided.
const defaultTemplate = "tmp-%%%%%%%%"

// mktempMain is the entry point for the mktemp command.
func mktempMain(_ *cobra.Command, arguments []string) error {
	// Determine the template.
	template := defaultTemplate
	if len(arguments) == 1 {
		template = arguments[0]
	} else if len(arguments) > 1 {
		return errors.New("at most one template may be specified")
	}

	// Prefix the template's leaf name with a UUID, if requested.
	if mktempConfiguration.uuid {
		directory, leaf := filepath.Split(template)
		template = directory + uuid.NewString() + "-" + leaf
	}

	// Determine the entity kind.
	kind := filesystem.EntityFile
	if mktempConfiguration.directory && mktempConfiguration.nameOnly {
		return errors.New("--directory and --name-only are mutually exclusive")
	} else if mktempConfiguration.directory {
		kind = filesystem.EntityDirectory
	} else if mktempConfiguration.nameOnly {
		kind = filesystem.EntityNameOnly
	}

	// Parse permissions.
	var mode os.FileMode
	if mktempConfiguration.mode != "" {
		value, err := strconv.ParseUint(mktempConfiguration.mode, 8, 32)
		if err != nil || value&^0777 != 0 {
			return errors.New("invalid permission mode")
		}
		mode = os.FileMode(value)
	}

	// Create the entity.
	file, path, err := filesystem.CreateUnique(template, kind, mktempConfiguration.absolute, mode)
	if err != nil {
		return err
	}
	if file != nil {
		must.Close(file, logger)
	}

	// Print the result.
	cmd.Println(path)

	// Success.
	return nil
}

// mktempCommand is the mktemp command.
var mktempCommand = &cobra.Command{
	Use:   "mktemp [<template>]",
	Short: "Create a uniquely named file or directory",
	Long: "Create a uniquely named file or directory. Each '%' in the template is " +
		"replaced by a random hexadecimal digit.",
	Run: cmd.Mainify(mktempMain),
}

// mktempConfiguration stores configuration for the mktemp command.
var mktempConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// directory indicates that a directory should be created.
	directory bool
	// nameOnly indicates that only a name should be generated.
	nameOnly bool
	// absolute indicates that relative templates should be placed in the
	// temporary directory.
	absolute bool
	// uuid indicates that the template's leaf name should be prefixed with a
	// random UUID.
	uuid bool
	// mode is the octal permission mode for the created entity.
	mode string
}

func init() {
	// Grab a handle for the command line flags.
	flags := mktempCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&mktempConfiguration.help, "help", "h", false, "Show help information")

	// Wire up creation flags.
	flags.BoolVarP(&mktempConfiguration.directory, "directory", "d", false, "Create a directory")
	flags.BoolVarP(&mktempConfiguration.nameOnly, "name-only", "n", false, "Only generate a name that doesn't exist")
	flags.BoolVarP(&mktempConfiguration.absolute, "absolute", "a", false, "Place relative templates in the temporary directory")
	flags.BoolVar(&mktempConfiguration.uuid, "uuid", false, "Prefix the name with a random UUID")
	flags.StringVarP(&mktempConfiguration.mode, "mode", "m", "", "Specify octal permissions for the created entity")
}
