package brew

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envValue(env []string, key string) (string, bool) {
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, key+"="); ok {
			return v, true
		}
	}
	return "", false
}

func TestMergedEnvironAugmentsPath(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/bin")

	env := mergedEnviron(nil)
	path, ok := envValue(env, "PATH")
	require.True(t, ok)
	assert.Equal(t, "/usr/bin:/bin:/opt/homebrew/bin:/usr/local/bin", path)
}

func TestMergedEnvironPathPrefixesNotDuplicated(t *testing.T) {
	t.Setenv("PATH", "/opt/homebrew/bin:/usr/bin")

	env := mergedEnviron(nil)
	path, _ := envValue(env, "PATH")
	assert.Equal(t, 1, strings.Count(path, "/opt/homebrew/bin"))
	assert.Contains(t, path, "/usr/local/bin")
}

func TestMergedEnvironMirrorsProxyVariables(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "http://proxy:3128")
	t.Setenv("https_proxy", "")
	t.Setenv("no_proxy", "localhost")
	t.Setenv("NO_PROXY", "")

	env := mergedEnviron(nil)

	v, _ := envValue(env, "https_proxy")
	assert.Equal(t, "http://proxy:3128", v)
	v, _ = envValue(env, "NO_PROXY")
	assert.Equal(t, "localhost", v)
}

func TestMergedEnvironOverridesWin(t *testing.T) {
	t.Setenv("HTTP_PROXY", "http://old:8080")

	env := mergedEnviron(map[string]string{"HTTP_PROXY": "http://new:8080"})
	v, _ := envValue(env, "HTTP_PROXY")
	assert.Equal(t, "http://new:8080", v)
}

func TestAugmentPathEmpty(t *testing.T) {
	assert.Equal(t, FallbackPathEntries, augmentPath(""))
}
