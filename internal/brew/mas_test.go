package brew

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppStoreListing(t *testing.T) {
	input := `497799835   Xcode       (15.2)
409203825   Numbers     (13.2)
`
	entries := ParseAppStoreListing(input)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(497799835), entries[0].ID)
	assert.Equal(t, "Xcode", entries[0].Name)
	assert.Equal(t, "15.2", entries[0].Version)
	assert.Empty(t, entries[0].NewVersion)
}

func TestParseAppStoreOutdatedVariant(t *testing.T) {
	input := "497799835  Xcode  (15.2 -> 15.3)\n"
	entries := ParseAppStoreListing(input)
	require.Len(t, entries, 1)
	assert.Equal(t, "15.2", entries[0].Version)
	assert.Equal(t, "15.3", entries[0].NewVersion)
}

func TestParseAppStoreListingSkipsBannerLines(t *testing.T) {
	input := `Warning: Nothing found
497799835   Xcode (15.2)
2 apps installed
`
	entries := ParseAppStoreListing(input)
	require.Len(t, entries, 1)
	assert.Equal(t, "Xcode", entries[0].Name)
}

func TestParseAppStoreListingNameWithSpaces(t *testing.T) {
	input := "408981434   iMovie HD Legacy  (10.4.1)\n"
	entries := ParseAppStoreListing(input)
	require.Len(t, entries, 1)
	assert.Equal(t, "iMovie HD Legacy", entries[0].Name)
}
