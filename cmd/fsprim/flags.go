package main

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

// durationValue is a pflag.Value for durations.
type durationValue time.Duration

// String implements pflag.Value.String.
func (d *durationValue) String() string {
	return time.Duration(*d).String()
}

// Set implements pflag.Value.Set.
func (d *durationValue) Set(value string) error {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*d = durationValue(duration)
	return nil
}

// Type implements pflag.Value.Type.
func (d *durationValue) Type() string {
	return "duration"
}

// byteSizeValue is a pflag.Value for sizes that accepts human-readable
// suffixes (e.g. 4KiB or 1MB).
type byteSizeValue uint64

// String implements pflag.Value.String.
func (s *byteSizeValue) String() string {
	return humanize.IBytes(uint64(*s))
}

// Set implements pflag.Value.Set.
func (s *byteSizeValue) Set(value string) error {
	size, err := humanize.ParseBytes(value)
	if err != nil {
		return err
	}
	*s = byteSizeValue(size)
	return nil
}

// Type implements pflag.Value.Type.
func (s *byteSizeValue) Type() string {
	return "size"
}

var (
	_ pflag.Value = (*durationValue)(nil)
	_ pflag.Value = (*byteSizeValue)(nil)
)
