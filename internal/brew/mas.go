package brew

import (
	"regexp"
	"strconv"
	"strings"

	"brewdeck/internal/model"
)

// mas listing lines follow a fixed template:
//
//	497799835   Xcode  (15.2)
//	497799835   Xcode  (15.2 -> 15.3)   [outdated variant]
//
// Banner and summary lines share the stream and simply fail the match.
var (
	masListRe     = regexp.MustCompile(`^\s*(\d+)\s+(.+?)\s+\(([^)]+)\)\s*$`)
	masOutdatedRe = regexp.MustCompile(`^(.+?)\s*->\s*(.+)$`)
)

// ParseAppStoreListing parses `mas list` / `mas outdated` output. Lines
// that do not match the template are silently skipped. The outdated
// variant's "(old -> new)" version field populates NewVersion.
func ParseAppStoreListing(text string) []model.AppStoreEntry {
	var entries []model.AppStoreEntry
	for _, line := range strings.Split(text, "\n") {
		m := masListRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			continue
		}
		entry := model.AppStoreEntry{
			ID:      id,
			Name:    strings.TrimSpace(m[2]),
			Version: m[3],
		}
		if vm := masOutdatedRe.FindStringSubmatch(m[3]); vm != nil {
			entry.Version = strings.TrimSpace(vm[1])
			entry.NewVersion = strings.TrimSpace(vm[2])
		}
		entries = append(entries, entry)
	}
	return entries
}
