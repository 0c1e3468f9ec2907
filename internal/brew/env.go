package brew

import (
	"os"
	"sort"
	"strings"
)

// Homebrew install prefixes for Apple Silicon and Intel. Appended to PATH
// on every invocation so brew is discoverable even when the caller's shell
// configuration never ran (e.g. launched from a GUI context).
const FallbackPathEntries = "/opt/homebrew/bin:/usr/local/bin"

// proxyVars are the proxy settings forwarded to every subprocess, in both
// the uppercase and lowercase spellings since tools disagree on which
// they read.
var proxyVars = []string{"HTTP_PROXY", "HTTPS_PROXY", "ALL_PROXY", "NO_PROXY"}

// mergedEnviron builds the environment for a subprocess: the caller's
// environment, PATH augmented with the fallback prefixes, proxy variables
// mirrored across case variants, and finally the spec's overrides, which
// win all ties.
func mergedEnviron(overrides map[string]string) []string {
	env := make(map[string]string)
	for _, e := range os.Environ() {
		k, v, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		env[k] = v
	}

	env["PATH"] = augmentPath(env["PATH"])

	// Mirror proxy settings so both spellings are always present.
	for _, k := range proxyVars {
		lower := strings.ToLower(k)
		if v, ok := env[k]; ok && env[lower] == "" {
			env[lower] = v
		} else if v, ok := env[lower]; ok && env[k] == "" {
			env[k] = v
		}
	}

	for k, v := range overrides {
		env[k] = v
	}

	// Stable order makes the result reproducible for tests.
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

// augmentPath appends the fallback prefixes to path, skipping entries
// already present. An empty path yields just the fallbacks.
func augmentPath(path string) string {
	existing := make(map[string]bool)
	for _, p := range strings.Split(path, ":") {
		if p != "" {
			existing[p] = true
		}
	}
	for _, p := range strings.Split(FallbackPathEntries, ":") {
		if existing[p] {
			continue
		}
		if path == "" {
			path = p
		} else {
			path += ":" + p
		}
	}
	return path
}
