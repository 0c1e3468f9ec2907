package brew

import "strings"

// ParseNameList interprets plain name-per-line output (pin list,
// dependents list, cask list) under the named operation's empty-result
// policy. Homebrew reports "nothing to report" for these commands with
// the same empty-stdout/non-zero-exit shape it uses for failures, so the
// policy table decides whether a failure-shaped result is really an
// empty collection.
func ParseNameList(op string, res ExecutionResult) ([]string, error) {
	if emptyResultOK(op, res) {
		return []string{}, nil
	}
	if res.ExitCode != 0 {
		return nil, &ExitError{Code: res.ExitCode, Stderr: res.Stderr}
	}
	names := []string{}
	for _, line := range strings.Split(res.Stdout, "\n") {
		names = append(names, strings.Fields(line)...)
	}
	return names, nil
}
