// Package filesystem provides a portable layer of filesystem primitives over
// POSIX and Windows: race-free unique entry creation, entity status and
// identity, memory-mapped file regions, directory iteration, replacing
// renames with retry of transient sharing violations, and UTF-8/UTF-16 path
// conversion. All operations accept and return UTF-8 paths and report
// failures as *Error values classified by Kind.
package filesystem
