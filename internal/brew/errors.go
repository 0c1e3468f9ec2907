package brew

import (
	"fmt"
	"strings"
)

// LaunchError means the process never started: the executable was missing
// or not runnable. Distinct from a process that started and failed.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("could not launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError means the process ran to completion but reported failure.
// Stderr carries whatever the tool printed, which is usually the only
// diagnostic available.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("command exited with status %d", e.Code)
	}
	return fmt.Sprintf("command exited with status %d: %s", e.Code, msg)
}

// ParseError means structured output did not match the expected schema.
// Kept distinct from ExitError: the process itself may have exited 0.
type ParseError struct {
	Format string // which schema/format failed, e.g. "info json"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s output: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// emptyPolicy describes when a call site must reinterpret a failure-shaped
// result as a valid empty collection. Homebrew signals "nothing to report"
// for some commands with a non-zero exit or empty stdout, the same shape
// it uses for real failures.
type emptyPolicy struct {
	// EmptyStdoutOK: empty stdout is an empty result regardless of exit code.
	EmptyStdoutOK bool
	// StderrPhrases: stderr containing any of these also means empty.
	StderrPhrases []string
}

// emptyResultPolicies is the single auditable table of per-operation
// exceptions. Call sites consult this instead of scattering
// string-contains checks.
var emptyResultPolicies = map[string]emptyPolicy{
	"pin-list":  {EmptyStdoutOK: true},
	"uses":      {EmptyStdoutOK: true},
	"cask-list": {EmptyStdoutOK: true, StderrPhrases: []string{"no casks installed"}},
}

// emptyResultOK reports whether the policy table allows treating res as
// an empty collection for the named operation.
func emptyResultOK(op string, res ExecutionResult) bool {
	pol, ok := emptyResultPolicies[op]
	if !ok {
		return false
	}
	if pol.EmptyStdoutOK && strings.TrimSpace(res.Stdout) == "" {
		return true
	}
	lower := strings.ToLower(res.Stderr)
	for _, phrase := range pol.StderrPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
