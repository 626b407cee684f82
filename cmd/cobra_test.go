package cmd

import (
	"testing"
)

func TestDisallowArguments(t *testing.T) {
	if err := DisallowArguments(nil, nil); err != nil {
		t.Error("empty arguments rejected:", err)
	}
	if err := DisallowArguments(nil, []string{"extra"}); err == nil {
		t.Error("positional arguments accepted")
	}
}
