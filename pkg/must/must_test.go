package must

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mutagen-io/fsprim/pkg/logging"
)

type failingCloser struct{}

func (failingCloser) Close() error {
	return errors.New("close failure")
}

func TestCloseLogsFailure(t *testing.T) {
	buffer := &bytes.Buffer{}
	Close(failingCloser{}, logging.NewLogger(logging.LevelWarn, buffer))
	if !strings.Contains(buffer.String(), "close failure") {
		t.Error("close failure not logged:", buffer.String())
	}
}

func TestSucceedSilentOnSuccess(t *testing.T) {
	buffer := &bytes.Buffer{}
	Succeed(nil, "nothing", logging.NewLogger(logging.LevelTrace, buffer))
	if buffer.Len() != 0 {
		t.Error("success was logged:", buffer.String())
	}
}

func TestOSRemoveMissingWithNilLogger(t *testing.T) {
	OSRemove("/does/not/exist/at/all", nil)
}
