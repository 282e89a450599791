package hive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/gogscan/internal/format"
	"github.com/joshuapare/gogscan/internal/testutil/hivegen"
)

// gogTree mirrors the layout GOG Galaxy writes under a SOFTWARE hive.
func gogTree() *hivegen.Node {
	games := hivegen.Key("Games", nil,
		hivegen.Key("1207658924", []hivegen.Value{
			hivegen.String("gameID", "1207658924"),
			hivegen.String("gameName", "Unreal Tournament 2004"),
			hivegen.String("path", `C:\GOG Games\UT2004`),
			hivegen.String("buildId", "55291"),
		}),
		hivegen.Key("1440163901", []hivegen.Value{
			hivegen.String("gameID", "1440163901"),
			hivegen.String("gameName", "Bonus Pack"),
			hivegen.String("dependsOn", "1207658924"),
		}),
	)
	return hivegen.Key("ROOT", nil,
		hivegen.Path([]string{"WOW6432Node", "GOG.com"}, games),
		hivegen.Key("Classes", nil),
	)
}

func openTestHive(t *testing.T, root *hivegen.Node) *Hive {
	t.Helper()
	h, err := FromBytes(hivegen.Build(root))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestOpen_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SOFTWARE")
	require.NoError(t, os.WriteFile(path, hivegen.Build(gogTree()), 0o600))

	h, err := Open(path)
	require.NoError(t, err)
	defer h.Close()

	require.Equal(t, path, h.Path())
	require.True(t, h.Base().IsClean())
	require.True(t, h.Base().ChecksumOK())

	root, err := h.Root()
	require.NoError(t, err)
	name, err := root.Name()
	require.NoError(t, err)
	require.Equal(t, "ROOT", name)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(dir, "nope"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty")
		require.NoError(t, os.WriteFile(path, nil, 0o600))
		_, err := Open(path)
		require.ErrorContains(t, err, "empty hive file")
	})

	t.Run("bad signature", func(t *testing.T) {
		data := hivegen.Build(gogTree())
		copy(data, "nope")
		_, err := FromBytes(data)
		require.ErrorIs(t, err, ErrNotHive)
	})

	t.Run("truncated", func(t *testing.T) {
		data := hivegen.Build(gogTree())
		_, err := FromBytes(data[:format.HeaderSize+16])
		require.ErrorContains(t, err, "reported hive length")
	})

	t.Run("too small for header", func(t *testing.T) {
		_, err := FromBytes([]byte("regf"))
		require.ErrorContains(t, err, "too small")
	})
}

func TestFind(t *testing.T) {
	h := openTestHive(t, gogTree())

	k, err := h.Find(`WOW6432Node\GOG.com\Games`)
	require.NoError(t, err)
	name, err := k.Name()
	require.NoError(t, err)
	require.Equal(t, "Games", name)

	// case-insensitive, tolerant of stray separators
	k2, err := h.Find(`\wow6432node\gog.COM\games\`)
	require.NoError(t, err)
	require.Equal(t, k.Offset(), k2.Offset())

	_, err = h.Find(`WOW6432Node\Steam`)
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestClosedHive(t *testing.T) {
	h, err := FromBytes(hivegen.Build(gogTree()))
	require.NoError(t, err)
	games, err := h.Find(`WOW6432Node\GOG.com\Games`)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	_, err = h.Root()
	require.ErrorIs(t, err, ErrClosed)
	_, err = games.Subkeys()
	require.ErrorIs(t, err, ErrClosed)
}
