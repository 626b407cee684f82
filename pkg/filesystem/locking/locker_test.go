package locking

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mutagen-io/fsprim/pkg/filesystem"
)

const (
	// lockerHelperEnvironmentVariable is the environment variable that
	// switches the test binary into lock helper mode. Its value is the path
	// of the lock file to contend for.
	lockerHelperEnvironmentVariable = "FSPRIM_LOCKER_HELPER_PATH"

	// lockerTestFailMessage is a sentinel message used to indicate lock
	// acquisition failure in the helper process. We could use an exit code,
	// but different systems might handle them differently.
	lockerTestFailMessage = "lock acquisition failed"
)

// TestMain runs the lock helper if requested and the tests otherwise.
func TestMain(m *testing.M) {
	if path := os.Getenv(lockerHelperEnvironmentVariable); path != "" {
		runLockHelper(path)
		return
	}
	os.Exit(m.Run())
}

// runLockHelper attempts a non-blocking lock acquisition and reports failure
// with the sentinel message.
func runLockHelper(path string) {
	locker, err := NewLocker(path, 0600)
	if err != nil {
		os.Stderr.WriteString("unable to create locker: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer locker.Close()
	if err := locker.Lock(false); err != nil {
		if errors.Is(err, filesystem.ErrSharingViolation) {
			os.Stderr.WriteString(lockerTestFailMessage + "\n")
		} else {
			os.Stderr.WriteString("unexpected lock error: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
	locker.Unlock()
}

// TestLockerFailOnDirectory tests that a locker creation fails for a directory.
func TestLockerFailOnDirectory(t *testing.T) {
	if _, err := NewLocker(t.TempDir(), 0600); err == nil {
		t.Fatal("creating a locker on a directory path succeeded")
	}
}

// TestLockerCycle tests the lifecycle of a Locker.
func TestLockerCycle(t *testing.T) {
	// Create a locker.
	locker, err := NewLocker(filepath.Join(t.TempDir(), "lock"), 0600)
	if err != nil {
		t.Fatal("unable to create locker:", err)
	}

	// Verify that writes fail without the lock.
	if _, err := locker.Write([]byte("unlocked")); err == nil {
		t.Error("write succeeded without lock held")
	}

	// Attempt to acquire the lock.
	if err := locker.Lock(true); err != nil {
		t.Fatal("unable to acquire lock:", err)
	}

	// Verify that the lock state is correct.
	if !locker.Held() {
		t.Error("lock incorrectly reported as unlocked")
	} else if err := locker.Lock(false); err == nil {
		t.Error("lock reacquired while held")
	}

	// Verify that writes succeed with the lock.
	if _, err := locker.Write([]byte("locked")); err != nil {
		t.Error("write failed with lock held:", err)
	}

	// Attempt to release the lock.
	if err := locker.Unlock(); err != nil {
		t.Fatal("unable to release lock:", err)
	} else if locker.Held() {
		t.Error("lock incorrectly reported as locked")
	}

	// Attempt to close the locker.
	if err := locker.Close(); err != nil {
		t.Fatal("unable to close locker:", err)
	}
}

// TestLockDuplicateFail tests that an additional attempt to acquire a lock by a
// separate process will fail with a sharing violation.
func TestLockDuplicateFail(t *testing.T) {
	// Create a locker, acquire the lock, and defer the release of the lock and
	// closure of the locker.
	path := filepath.Join(t.TempDir(), "lock")
	locker, err := NewLocker(path, 0600)
	if err != nil {
		t.Fatal("unable to create locker:", err)
	} else if err = locker.Lock(true); err != nil {
		t.Fatal("unable to acquire lock:", err)
	}
	defer func() {
		locker.Unlock()
		locker.Close()
	}()

	// Run the helper and ensure that it fails with the proper message
	// (indicating failed lock acquisition).
	testCommand := exec.Command(os.Args[0], "-test.run=^$")
	testCommand.Env = append(os.Environ(), lockerHelperEnvironmentVariable+"="+path)
	errorBuffer := &bytes.Buffer{}
	testCommand.Stderr = errorBuffer
	if err := testCommand.Run(); err == nil {
		t.Error("helper command succeeded unexpectedly")
	} else if !strings.Contains(errorBuffer.String(), lockerTestFailMessage) {
		t.Error("helper command error output did not contain failure message:", errorBuffer.String())
	}
}
