package brew

import (
	"strings"

	"brewdeck/internal/model"
)

const (
	warningMarker = "Warning:"
	errorMarker   = "Error:"
)

// doctorFooters are boilerplate lines excluded from output. Brew appends
// these around the actual diagnostics.
var doctorFooters = []string{
	"Please note that these warnings are just used to help the Homebrew maintainers",
	"Your system is ready to brew",
}

// ParseDoctor parses `brew doctor` output in a single stateful pass.
// A "Warning:" line opens a category that collects subsequent lines
// until the next marker; an "Error:" line is always a standalone
// high-severity entry regardless of the current category. Unrecognized
// leading text outside any category is skipped — the doctor format is
// not a stable contract.
func ParseDoctor(text string) []model.DoctorEntry {
	var entries []model.DoctorEntry
	var current *model.DoctorEntry

lines:
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		for _, footer := range doctorFooters {
			if strings.HasPrefix(trimmed, footer) {
				continue lines
			}
		}

		switch {
		case strings.HasPrefix(trimmed, warningMarker):
			entries = append(entries, model.DoctorEntry{
				Severity: model.SeverityWarning,
				Message:  strings.TrimSpace(strings.TrimPrefix(trimmed, warningMarker)),
			})
			current = &entries[len(entries)-1]
		case strings.HasPrefix(trimmed, errorMarker):
			// Errors never absorb detail lines and never continue a
			// warning category.
			entries = append(entries, model.DoctorEntry{
				Severity: model.SeverityError,
				Message:  strings.TrimSpace(strings.TrimPrefix(trimmed, errorMarker)),
			})
			current = nil
		case current != nil:
			current.Details = append(current.Details, trimmed)
		}
	}
	return entries
}
