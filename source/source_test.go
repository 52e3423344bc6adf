package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opm-go/deckparser/deckerr"
)

func TestMappedOpenerReadsContents(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "deck.data")
	require.NoError(t, os.WriteFile(p, []byte("RUNSPEC\nOIL\n"), 0o644))

	var o MappedOpener
	r, err := o.Open(p)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, "RUNSPEC\nOIL\n", string(r.Bytes()))
}

func TestMappedOpenerEmptyFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.data")
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	var o MappedOpener
	r, err := o.Open(p)
	require.NoError(t, err)
	defer r.Close()

	require.Empty(t, r.Bytes())
}

func TestMappedOpenerMissingFile(t *testing.T) {
	var o MappedOpener
	_, err := o.Open(filepath.Join(t.TempDir(), "missing.data"))
	require.Error(t, err)

	var de *deckerr.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, deckerr.IOError, de.Kind)
}

func TestUnixNormalizerRelative(t *testing.T) {
	var n UnixNormalizer
	require.Equal(t, "root/sub/inc.data", n.Normalize("root", "sub/inc.data"))
}

func TestUnixNormalizerBackslashes(t *testing.T) {
	var n UnixNormalizer
	require.Equal(t, "root/sub/inc.data", n.Normalize("root", `sub\inc.data`))
}

func TestUnixNormalizerAbsolute(t *testing.T) {
	var n UnixNormalizer
	require.Equal(t, "/abs/inc.data", n.Normalize("root", "/abs/inc.data"))
}

func TestUnixNormalizerRootDirReusedAcrossDepth(t *testing.T) {
	// both a top-level and a nested INCLUDE resolve relative paths against
	// the same root directory, not the directory of the including file.
	var n UnixNormalizer
	top := n.Normalize("deck", "a.data")
	nested := n.Normalize("deck", "b.data")
	require.Equal(t, "deck/a.data", top)
	require.Equal(t, "deck/b.data", nested)
}
