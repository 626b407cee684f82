package cmd

import (
	"context"
	"testing"
)

func TestTerminationContextStop(t *testing.T) {
	ctx, stop := TerminationContext(context.Background())
	if ctx.Err() != nil {
		t.Fatal("termination context cancelled before stop")
	}
	stop()
	<-ctx.Done()
}
