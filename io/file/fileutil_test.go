package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prysmaticlabs/slashing-oracle/io/file"
	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
	"github.com/prysmaticlabs/slashing-oracle/testing/util"
)

const zeroRoot = `"0x0000000000000000000000000000000000000000000000000000000000000000"`

func TestPathExpansion(t *testing.T) {
	require.NoError(t, os.Setenv("DDDXXX", "/tmp"))
	tests := map[string]string{
		"/home/someuser/tmp": "/home/someuser/tmp",
		"$DDDXXX/a/b":        "/tmp/a/b",
		"/a/b/":              "/a/b",
	}
	for test, expected := range tests {
		expanded, err := file.ExpandPath(test)
		require.NoError(t, err)
		assert.Equal(t, expected, expanded)
	}
}

func TestMkdirAll_AlreadyExists_WrongPermissions(t *testing.T) {
	dirName := filepath.Join(t.TempDir(), "somedir")
	require.NoError(t, os.MkdirAll(dirName, 0750))
	err := file.MkdirAll(dirName)
	assert.ErrorContains(t, "already exists without proper 0700 permissions", err)
}

func TestMkdirAll_OK(t *testing.T) {
	dirName := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, file.MkdirAll(dirName))
	info, err := os.Stat(dirName)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	require.NoError(t, file.MkdirAll(dirName))
}

func TestHasDir(t *testing.T) {
	dir := t.TempDir()
	exists, err := file.HasDir(dir)
	require.NoError(t, err)
	assert.Equal(t, true, exists)
	exists, err = file.HasDir(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Equal(t, false, exists)
}

func TestWriteJSON_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0755))
	require.NoError(t, file.WriteJSON(filepath.Join(dir, "out.json"), map[string]int{"a": 1}))
	enc, err := os.ReadFile(filepath.Join(dir, "out.json"))
	require.NoError(t, err)
	assert.StringContains(t, `"a": 1`, string(enc))
}

func TestLoadAttestations_YAML(t *testing.T) {
	raw := `
- attesting_indices: [1, 2, 3]
  data:
    slot: 0
    index: 0
    beacon_block_root: ` + zeroRoot + `
    source: {epoch: 0, root: ` + zeroRoot + `}
    target: {epoch: "5", root: ` + zeroRoot + `}
`
	p := filepath.Join(t.TempDir(), "atts.yaml")
	require.NoError(t, os.WriteFile(p, []byte(raw), 0600))
	atts, err := file.LoadAttestations(p)
	require.NoError(t, err)
	require.Equal(t, 1, len(atts))
	assert.DeepEqual(t, []uint64{1, 2, 3}, atts[0].AttestingIndices)
	assert.Equal(t, uint64(5), uint64(atts[0].Data.Target.Epoch))
}

func TestWriteJSONThenLoad(t *testing.T) {
	a := util.IndexedAtt([]uint64{1, 2}, 0, 5, 0)
	b := util.IndexedAtt([]uint64{2, 3}, 0, 5, 1)
	dir := filepath.Join(t.TempDir(), "out")

	attsPath := filepath.Join(dir, "atts.json")
	require.NoError(t, file.WriteJSON(attsPath, []interface{}{a, b}))
	atts, err := file.LoadAttestations(attsPath)
	require.NoError(t, err)
	require.Equal(t, 2, len(atts))
	assert.Equal(t, true, a.Equal(atts[0]))
	assert.Equal(t, true, b.Equal(atts[1]))

	slashingsPath := filepath.Join(dir, "slashings.json")
	require.NoError(t, file.WriteJSON(slashingsPath, []interface{}{util.AttSlashing(a, b)}))
	slashings, err := file.LoadAttesterSlashings(slashingsPath)
	require.NoError(t, err)
	require.Equal(t, 1, len(slashings))
	assert.Equal(t, true, slashings[0].Attestation_2.Equal(b))
}

func TestLoadAttestations_Errors(t *testing.T) {
	_, err := file.LoadAttestations(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, "could not read", err)

	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("- attesting_indices: [1]\n"), 0600))
	_, err = file.LoadAttestations(p)
	assert.ErrorContains(t, "missing data", err)

	p = filepath.Join(t.TempDir(), "null.yaml")
	require.NoError(t, os.WriteFile(p, []byte("- null\n"), 0600))
	_, err = file.LoadAttesterSlashings(p)
	assert.ErrorContains(t, "empty attester slashing at position 0", err)
}
