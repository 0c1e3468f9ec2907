package brew

import (
	"regexp"
	"strconv"
	"strings"

	"brewdeck/internal/model"
)

var (
	// "This operation has freed approximately 2.5MB of disk space."
	// Brew's phrasing has varied ("Freed 512B" in older releases), so
	// only the verb and the size are required.
	freedRe = regexp.MustCompile(`(?i)freed(?: approximately)?\s+([\d.]+)\s*(B|KB|MB|GB|TB)`)

	// Binary multipliers: brew reports sizes with 1024-based units.
	byteUnits = map[string]int64{
		"B":  1,
		"KB": 1 << 10,
		"MB": 1 << 20,
		"GB": 1 << 30,
		"TB": 1 << 40,
	}
)

// ParseCleanup scans cleanup output for three independent signals:
// removed formula lines, removed cask lines (distinguished by the
// Caskroom path segment) and the freed-space summary. Any signal may be
// absent; the result is then simply zero for that signal.
func ParseCleanup(text string) model.CleanupSummary {
	var summary model.CleanupSummary

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if rest, ok := strings.CutPrefix(trimmed, "Removing: "); ok {
			path := strings.Fields(rest)[0]
			if strings.Contains(path, "/Caskroom/") {
				summary.RemovedCasks = append(summary.RemovedCasks, removedName(path, "/Caskroom/"))
			} else if strings.Contains(path, "/Cellar/") {
				summary.RemovedFormulae = append(summary.RemovedFormulae, removedName(path, "/Cellar/"))
			} else {
				// Cache entries: last component, "name--version.ext".
				summary.RemovedFormulae = append(summary.RemovedFormulae, removedName(path, ""))
			}
			continue
		}

		if m := freedRe.FindStringSubmatch(trimmed); m != nil {
			if n, err := ParseByteSize(m[1] + strings.ToUpper(m[2])); err == nil {
				summary.FreedBytes = n
			}
		}
	}
	return summary
}

// removedName extracts the package name from a removal path: the first
// path component after sep (the last component when sep is empty),
// stripped of trailing dots and of the "--version" suffix brew appends
// to cache entries.
func removedName(path, sep string) string {
	name := path
	if sep == "" {
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			name = path[idx+1:]
		}
	} else if idx := strings.LastIndex(path, sep); idx >= 0 {
		name = path[idx+len(sep):]
		if slash := strings.Index(name, "/"); slash >= 0 {
			name = name[:slash]
		}
	}
	name, _, _ = strings.Cut(name, "--")
	return strings.TrimRight(name, ".")
}

var sizeRe = regexp.MustCompile(`^([\d.]+)\s*(B|KB|MB|GB|TB)$`)

// ParseByteSize converts a human size like "2.5KB" to bytes using
// 1024-based multipliers.
func ParseByteSize(s string) (int64, error) {
	m := sizeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, &ParseError{Format: "byte size", Err: strconv.ErrSyntax}
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &ParseError{Format: "byte size", Err: err}
	}
	return int64(value * float64(byteUnits[m[2]])), nil
}
