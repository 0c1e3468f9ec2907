package brew

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ResolveExecutable locates a tool by name: first the caller's PATH, then
// the fixed Homebrew install prefixes. GUI-launched processes often have
// a bare PATH, so the prefixes are tried even when LookPath fails.
func ResolveExecutable(name string) (string, error) {
	if p, err := exec.LookPath(name); err == nil {
		return p, nil
	}
	for _, dir := range strings.Split(FallbackPathEntries, ":") {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0111 != 0 {
			return candidate, nil
		}
	}
	return "", &LaunchError{Path: name, Err: exec.ErrNotFound}
}
