package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/gogscan/internal/testutil"
	"github.com/joshuapare/gogscan/internal/testutil/hivegen"
)

func gogHive(t *testing.T) string {
	t.Helper()
	root := testutil.SoftwareHive(
		testutil.Entry{Key: "1207658924", GameID: "1207658924", GameName: "UT2004", Path: `C:\GOG\UT2004`, BuildID: "55291"},
		testutil.Entry{Key: "1440163901", GameName: "Bonus Pack", DependsOn: "1207658924"},
	)
	games := root.Children[1].Children[0].Children[0]
	games.Children[1].Values = append(games.Children[1].Values,
		hivegen.DWORD("ver", 7),
		hivegen.Binary("blob", []byte{1, 2, 3}),
	)
	return testutil.WriteHive(t, root)
}

func TestHiveStore_DefaultMount(t *testing.T) {
	s, err := OpenHive(gogHive(t), HiveOptions{Mount: DefaultMount})
	require.NoError(t, err)
	defer s.Close()

	games, err := s.OpenKey(`HKEY_LOCAL_MACHINE\SOFTWARE\WOW6432Node\GOG.com\Games`)
	require.NoError(t, err)
	assert.Equal(t, `SOFTWARE\WOW6432Node\GOG.com\Games`, games.Path())

	names, err := games.SubKeyNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"1207658924", "1440163901"}, names)

	dlc, err := games.OpenSubKey("1440163901")
	require.NoError(t, err)
	assert.Equal(t, `SOFTWARE\WOW6432Node\GOG.com\Games\1440163901`, dlc.Path())

	v, err := dlc.StringValue("dependsOn")
	require.NoError(t, err)
	assert.Equal(t, "1207658924", v)

	v, err = dlc.StringValue("ver")
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	_, err = dlc.StringValue("blob")
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = dlc.StringValue("path")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = games.OpenSubKey("999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHiveStore_Mounts(t *testing.T) {
	path := gogHive(t)

	tests := []struct {
		name    string
		mount   string
		key     string
		wantErr error
	}{
		{"default", "SOFTWARE", `SOFTWARE\WOW6432Node\GOG.com\Games`, nil},
		{"case insensitive", "software", `Software\wow6432node\gog.com\games`, nil},
		{"hklm prefixed mount", `HKLM\SOFTWARE`, `SOFTWARE\WOW6432Node\GOG.com\Games`, nil},
		{"unmounted", "", `WOW6432Node\GOG.com\Games`, nil},
		{"outside mount", "SOFTWARE", `SYSTEM\Select`, ErrNotFound},
		{"shorter than mount", `SOFTWARE\Classes`, `SOFTWARE`, ErrNotFound},
		{"missing key", "SOFTWARE", `SOFTWARE\WOW6432Node\Valve`, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := OpenHive(path, HiveOptions{Mount: tt.mount})
			require.NoError(t, err)
			defer s.Close()

			k, err := s.OpenKey(tt.key)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			names, err := k.SubKeyNames()
			require.NoError(t, err)
			assert.Len(t, names, 2)
		})
	}
}

func TestOpenHive_Errors(t *testing.T) {
	_, err := OpenHive(filepath.Join(t.TempDir(), "absent"), HiveOptions{})
	require.ErrorIs(t, err, ErrNotFound)

	bogus := testutil.WriteFile(t, "bogus", []byte("not a hive at all"))
	_, err = OpenHive(bogus, HiveOptions{})
	require.ErrorIs(t, err, ErrFormat)
}
