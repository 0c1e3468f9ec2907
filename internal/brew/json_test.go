package brew

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstalled(t *testing.T) {
	data := []byte(`{
	  "formulae": [
	    {
	      "name": "wget",
	      "desc": "Internet file retriever",
	      "homepage": "https://www.gnu.org/software/wget/",
	      "pinned": true,
	      "outdated": false,
	      "versions": {"stable": "1.21.4"},
	      "installed": [{"version": "1.21.3"}]
	    },
	    {
	      "name": "jq",
	      "versions": {"stable": "1.7"},
	      "installed": []
	    }
	  ],
	  "casks": [
	    {
	      "token": "firefox",
	      "name": ["Mozilla Firefox", "Firefox"],
	      "desc": "Web browser",
	      "version": "121.0",
	      "installed": "120.0",
	      "outdated": true
	    },
	    {
	      "token": "iterm2",
	      "name": "iTerm2",
	      "version": "3.4.23"
	    }
	  ]
	}`)

	formulae, casks, err := ParseInstalled(data)
	require.NoError(t, err)
	require.Len(t, formulae, 2)
	require.Len(t, casks, 2)

	assert.Equal(t, "wget", formulae[0].Name)
	assert.Equal(t, "1.21.3", formulae[0].Version, "installed version wins over stable")
	assert.True(t, formulae[0].Pinned)

	// Absent desc/homepage must not fail the decode.
	assert.Equal(t, "jq", formulae[1].Name)
	assert.Empty(t, formulae[1].Desc)
	assert.Equal(t, "1.7", formulae[1].Version)

	// Name as array of strings.
	assert.Equal(t, []string{"Mozilla Firefox", "Firefox"}, casks[0].Names)
	assert.Equal(t, "120.0", casks[0].Version)
	assert.True(t, casks[0].IsCask)

	// Name as a single string normalizes to a one-element list.
	assert.Equal(t, []string{"iTerm2"}, casks[1].Names)
}

func TestParseInstalledMalformedIsHardError(t *testing.T) {
	_, _, err := ParseInstalled([]byte(`{"formulae": [`))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "info json", perr.Format)
}

func TestParseOutdated(t *testing.T) {
	data := []byte(`{
	  "formulae": [
	    {"name": "wget", "installed_versions": ["1.21.3"], "current_version": "1.21.4", "pinned": false}
	  ],
	  "casks": [
	    {"name": "firefox", "installed_versions": "120.0", "current_version": "121.0"}
	  ]
	}`)

	outdated, err := ParseOutdated(data)
	require.NoError(t, err)
	require.Len(t, outdated, 2)

	assert.Equal(t, "wget", outdated[0].Name)
	assert.Equal(t, []string{"1.21.3"}, outdated[0].InstalledVersions)
	assert.Equal(t, "1.21.4", outdated[0].CurrentVersion)
	assert.False(t, outdated[0].IsCask)

	// Casks report installed_versions as a bare string.
	assert.Equal(t, []string{"120.0"}, outdated[1].InstalledVersions)
	assert.True(t, outdated[1].IsCask)
}

func TestParseServices(t *testing.T) {
	data := []byte(`[
	  {"name": "postgresql@16", "status": "started", "user": "me", "file": "/opt/homebrew/etc/p.plist"},
	  {"name": "redis", "status": "none", "user": "", "file": ""}
	]`)
	services, err := ParseServices(data)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "postgresql@16", services[0].Name)
	assert.Equal(t, "started", services[0].Status)
}

func TestParseTaps(t *testing.T) {
	data := []byte(`[
	  {"name": "homebrew/core", "official": true, "formula_names": ["wget", "jq"], "cask_tokens": []}
	]`)
	taps, err := ParseTaps(data)
	require.NoError(t, err)
	require.Len(t, taps, 1)
	assert.True(t, taps[0].Official)
	assert.Equal(t, []string{"wget", "jq"}, taps[0].FormulaNames)
}

func TestParseTapsMalformed(t *testing.T) {
	_, err := ParseTaps([]byte(`{"not": "an array"}`))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
