package filesystem

import (
	"time"
)

// RenamePolicy controls how renames are retried when they fail due to a
// transient sharing violation, e.g. while an indexing or scanning process
// briefly holds the source or destination open.
type RenamePolicy struct {
	// Attempts is the maximum number of rename attempts. Values less than one
	// are treated as one.
	Attempts int
	// Delay is the pause between attempts.
	Delay time.Duration
}

// DefaultRenamePolicy is the policy used by Rename. The attempt count is an
// empirical value that only affects resilience, so it may be adjusted (e.g.
// via configuration) during program initialization.
var DefaultRenamePolicy = RenamePolicy{
	Attempts: 2000,
	Delay:    10 * time.Millisecond,
}

// Rename moves from to to using DefaultRenamePolicy. See RenameWithPolicy.
func Rename(from, to string) error {
	return RenameWithPolicy(DefaultRenamePolicy, from, to)
}

// RenameWithPolicy moves from to to, replacing any existing entry at to. If
// the source and destination are on different volumes, then the source is
// copied and removed. Sharing violations are retried according to policy. Any
// other failure, or exhausting the policy's attempts, returns the last error.
func RenameWithPolicy(policy RenamePolicy, from, to string) error {
	return renameWithMover(policy, from, to, moveEntry)
}

// renameWithMover implements RenameWithPolicy using the specified move
// operation.
func renameWithMover(policy RenamePolicy, from, to string, move func(string, string) error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = move(from, to); err == nil || !isSharingViolation(err) {
			return err
		}
		logger.Tracef("Rename of %s to %s hit sharing violation (attempt %d of %d)", from, to, attempt, attempts)
		if attempt < attempts && policy.Delay > 0 {
			time.Sleep(policy.Delay)
		}
	}
	return err
}

// isSharingViolation reports whether a rename failure is a transient sharing
// violation that warrants another attempt.
func isSharingViolation(err error) bool {
	return err != nil && KindOf(err) == KindSharingViolation
}
