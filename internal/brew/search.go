package brew

import (
	"strings"

	"brewdeck/internal/model"
)

// Section headings in `brew search --formulae --casks` output.
const (
	headingFormulae = "==> Formulae"
	headingCasks    = "==> Casks"
)

// ParseSearch splits heading-delimited search output into the formula and
// cask name lists. Heading lines are discarded, blank lines skipped, and
// every remaining whitespace-delimited token on a data line is an
// independent name (brew columnates results when writing to a pipe-less
// terminal, so one line can carry several names).
func ParseSearch(text string) model.SearchResults {
	var results model.SearchResults
	// Names before any heading belong to the formula section; plain
	// `brew search` output has no headings at all.
	casks := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, headingFormulae):
			casks = false
			continue
		case strings.HasPrefix(trimmed, headingCasks):
			casks = true
			continue
		}
		for _, name := range strings.Fields(trimmed) {
			if casks {
				results.Casks = append(results.Casks, name)
			} else {
				results.Formulae = append(results.Formulae, name)
			}
		}
	}
	return results
}
