package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNilLogger(t *testing.T) {
	var logger *Logger
	if logger.Sublogger("child") != nil {
		t.Error("sublogger of nil logger is non-nil")
	}
	if logger.Level() != LevelDisabled {
		t.Error("nil logger reports non-disabled level")
	}
	logger.Warnf("%d", 1)
	logger.Error(errors.New("ignored"))
	logger.Tracef("%d", 2)
}

func TestLevelFiltering(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := NewLogger(LevelWarn, buffer)
	logger.Debugf("debug %d", 1)
	logger.Info("info")
	if buffer.Len() != 0 {
		t.Fatal("messages above level were emitted:", buffer.String())
	}
	logger.Warnf("warn %d", 2)
	if !strings.Contains(buffer.String(), "warn 2") {
		t.Error("warning not emitted:", buffer.String())
	}
}

func TestSubloggerPrefix(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := NewLogger(LevelDebug, buffer).Sublogger("filesystem").Sublogger("rename")
	logger.Debugf("attempt %d", 3)
	if !strings.Contains(buffer.String(), "[filesystem.rename] attempt 3") {
		t.Error("unexpected output:", buffer.String())
	}
}

func TestNameToLevel(t *testing.T) {
	testCases := []struct {
		name     string
		expected Level
		valid    bool
	}{
		{"disabled", LevelDisabled, true},
		{"error", LevelError, true},
		{"warn", LevelWarn, true},
		{"info", LevelInfo, true},
		{"debug", LevelDebug, true},
		{"trace", LevelTrace, true},
		{"loud", LevelDisabled, false},
	}
	for _, testCase := range testCases {
		level, ok := NameToLevel(testCase.name)
		if ok != testCase.valid {
			t.Errorf("validity mismatch for %q", testCase.name)
		} else if level != testCase.expected {
			t.Errorf("level mismatch for %q: %v != %v", testCase.name, level, testCase.expected)
		} else if ok && level.String() != testCase.name {
			t.Errorf("round trip mismatch for %q", testCase.name)
		}
	}
}

func TestLevelNamesRoundTrip(t *testing.T) {
	for _, name := range LevelNames() {
		level, ok := NameToLevel(name)
		if !ok {
			t.Errorf("level name %q not recognized", name)
		} else if level.String() != name {
			t.Errorf("level name round trip failed: %q != %q", level.String(), name)
		}
	}
	if level, ok := NameToLevel(" TRACE "); !ok || level != LevelTrace {
		t.Error("level names not matched case-insensitively")
	}
	if level, ok := NameToLevel("verbose"); ok || level != LevelDisabled {
		t.Error("invalid level name accepted")
	}
	if Level(42).String() != "unknown" {
		t.Error("out-of-range level has unexpected name")
	}
}
