// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/gogscan/internal/testutil/hivegen"
)

// GamesPath is where GOG Galaxy registers installs, relative to HKLM.
const GamesPath = `SOFTWARE\WOW6432Node\GOG.com\Games`

// Entry describes one Games subkey. Empty fields are omitted from the key.
type Entry struct {
	Key       string
	GameID    string
	GameName  string
	Path      string
	BuildID   string
	DependsOn string
}

func (e Entry) values() []hivegen.Value {
	var vs []hivegen.Value
	add := func(name, v string) {
		if v != "" {
			vs = append(vs, hivegen.String(name, v))
		}
	}
	add("gameID", e.GameID)
	add("gameName", e.GameName)
	add("path", e.Path)
	add("buildId", e.BuildID)
	add("dependsOn", e.DependsOn)
	return vs
}

// SoftwareHive builds the node tree of a SOFTWARE hive whose Games key holds
// entries in order.
func SoftwareHive(entries ...Entry) *hivegen.Node {
	games := hivegen.Key("Games", nil)
	for _, e := range entries {
		games.Children = append(games.Children, hivegen.Key(e.Key, e.values()))
	}
	return hivegen.Key("ROOT", nil,
		hivegen.Key("Microsoft", nil),
		hivegen.Path([]string{"WOW6432Node", "GOG.com"}, games),
	)
}

// WriteHive serialises root into a file under t.TempDir and returns its path.
func WriteHive(t *testing.T, root *hivegen.Node) string {
	t.Helper()
	return WriteFile(t, "SOFTWARE", hivegen.Build(root))
}

// WriteFile writes data to name under t.TempDir and returns the path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
