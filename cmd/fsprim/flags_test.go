package main

import (
	"testing"
	"time"
)

func TestDurationValue(t *testing.T) {
	var value durationValue
	if err := value.Set("250ms"); err != nil {
		t.Fatal("unable to set duration:", err)
	} else if time.Duration(value) != 250*time.Millisecond {
		t.Error("duration mismatch:", time.Duration(value))
	} else if value.String() != "250ms" {
		t.Error("unexpected string representation:", value.String())
	}
	if err := value.Set("soon"); err == nil {
		t.Error("invalid duration accepted")
	}
}

func TestByteSizeValue(t *testing.T) {
	var value byteSizeValue
	if err := value.Set("4KiB"); err != nil {
		t.Fatal("unable to set size:", err)
	} else if value != 4096 {
		t.Error("size mismatch:", uint64(value))
	} else if value.String() != "4.0 KiB" {
		t.Error("unexpected string representation:", value.String())
	}
	if err := value.Set("lots"); err == nil {
		t.Error("invalid size accepted")
	}
}
