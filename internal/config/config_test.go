package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	var dir = t.TempDir()
	var path = filepath.Join(dir, "links.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	var path = writeTempConfig(t, `
links:
  - name: default
    source_call: N0CALL
    source_ssid: 0
    dest_call: CQ
    dest_ssid: 0
    fx25_tag: 0x05
`)
	var set, err = Load(path)
	require.NoError(t, err)
	require.Len(t, set.Links, 1)

	var link, ok = set.Find("default")
	require.True(t, ok)
	assert.Equal(t, "N0CALL", link.SourceCall)
	assert.Equal(t, "CQ", link.DestCall)
	assert.Equal(t, 5, link.FX25Tag)
}

func TestLoadRejectsOverlongCallsign(t *testing.T) {
	var path = writeTempConfig(t, `
links:
  - name: bad
    source_call: WAYTOOLONG
    dest_call: CQ
`)
	var _, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsBadSSID(t *testing.T) {
	var path = writeTempConfig(t, `
links:
  - name: bad
    source_call: N0CALL
    source_ssid: 200
    dest_call: CQ
`)
	var _, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsOutOfRangeTag(t *testing.T) {
	var path = writeTempConfig(t, `
links:
  - name: bad
    source_call: N0CALL
    dest_call: CQ
    fx25_tag: 0x20
`)
	var _, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFindMissingLink(t *testing.T) {
	var path = writeTempConfig(t, "links: []\n")
	var set, err = Load(path)
	require.NoError(t, err)
	var _, ok = set.Find("nope")
	assert.False(t, ok)
}
