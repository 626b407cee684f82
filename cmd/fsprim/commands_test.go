package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

func TestCommandLifecycle(t *testing.T) {
	directory := t.TempDir()
	created := filepath.Join(directory, "created")
	renamed := filepath.Join(directory, "renamed")

	// Create a directory and a file within it.
	if err := mkdirMain(mkdirCommand, []string{created}); err != nil {
		t.Fatal("unable to create directory:", err)
	}
	file := filepath.Join(created, "file")
	if err := os.WriteFile(file, []byte("content"), 0600); err != nil {
		t.Fatal("unable to create file:", err)
	}

	// Resize the file.
	truncateConfiguration.size = 2
	defer func() {
		truncateConfiguration.size = 0
	}()
	if err := truncateCommand.Flags().Set("size", "2"); err != nil {
		t.Fatal("unable to set size flag:", err)
	}
	if err := truncateMain(truncateCommand, []string{file}); err != nil {
		t.Fatal("unable to resize file:", err)
	} else if status, err := filesystem.Status(file); err != nil {
		t.Fatal("unable to query file status:", err)
	} else if status.Size != 2 {
		t.Error("unexpected file size after resize:", status.Size)
	}

	// Rename the file and remove it.
	if err := mvMain(mvCommand, []string{file, renamed}); err != nil {
		t.Fatal("unable to rename file:", err)
	}
	if err := rmMain(rmCommand, []string{renamed, created}); err != nil {
		t.Fatal("unable to remove entries:", err)
	}
	if err := rmMain(rmCommand, []string{renamed}); !filesystem.IsNotFound(err) {
		t.Error("removal of missing entry did not fail with not found:", err)
	}
}

func TestMktempNameOnly(t *testing.T) {
	mktempConfiguration.nameOnly = true
	defer func() {
		mktempConfiguration.nameOnly = false
	}()
	template := filepath.Join(t.TempDir(), "name-%%%%")
	if err := mktempMain(mktempCommand, []string{template}); err != nil {
		t.Fatal("unable to generate name:", err)
	}
	if err := mktempMain(mktempCommand, []string{template, template}); err == nil {
		t.Error("multiple templates accepted")
	}
}
