package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/gogscan/internal/testutil"
)

const gogExport = "Windows Registry Editor Version 5.00\r\n" +
	"\r\n" +
	"[HKEY_LOCAL_MACHINE\\SOFTWARE\\WOW6432Node\\GOG.com\\Games\\1207664643]\r\n" +
	"\"gameID\"=\"1207664643\"\r\n" +
	"\"gameName\"=\"The Witcher 3: Wild Hunt\"\r\n" +
	"\"path\"=\"C:\\\\GOG Games\\\\The Witcher 3 Wild Hunt\"\r\n" +
	"\"buildId\"=\"58187341906288957\"\r\n" +
	"\"ver\"=dword:00000003\r\n" +
	"\"exe\"=hex(2):43,00,3a,00,5c,00,77,00,33,00,2e,00,65,00,78,00,65,00,00,00\r\n" +
	"\"icon\"=hex:01,02\r\n" +
	"\r\n" +
	"[HKEY_LOCAL_MACHINE\\SOFTWARE\\WOW6432Node\\GOG.com\\Games\\1640424747]\r\n" +
	"\"gameName\"=\"Hearts of Stone\"\r\n" +
	"\"dependsOn\"=\"1207664643\"\r\n" +
	"\"stale\"=\"x\"\r\n" +
	"\"stale\"=-\r\n" +
	"\r\n" +
	"[HKEY_LOCAL_MACHINE\\SOFTWARE\\WOW6432Node\\GOG.com\\Games\\1]\r\n" +
	"\"gameName\"=\"Removed\"\r\n" +
	"\r\n" +
	"[-HKEY_LOCAL_MACHINE\\SOFTWARE\\WOW6432Node\\GOG.com\\Games\\1]\r\n"

func TestOpenRegFile(t *testing.T) {
	data, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(gogExport))
	require.NoError(t, err)
	m, err := OpenRegFile(testutil.WriteFile(t, "games.reg", data))
	require.NoError(t, err)

	games, err := m.OpenKey(testutil.GamesPath)
	require.NoError(t, err)
	names, err := games.SubKeyNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"1207664643", "1640424747"}, names)

	w3, err := games.OpenSubKey("1207664643")
	require.NoError(t, err)

	tests := []struct {
		value string
		want  string
	}{
		{"gameID", "1207664643"},
		{"gameName", "The Witcher 3: Wild Hunt"},
		{"path", `C:\GOG Games\The Witcher 3 Wild Hunt`},
		{"buildId", "58187341906288957"},
		{"ver", "3"},
		{"exe", `C:\w3.exe`},
	}
	for _, tt := range tests {
		got, err := w3.StringValue(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}

	_, err = w3.StringValue("icon")
	require.ErrorIs(t, err, ErrTypeMismatch)

	hos, err := games.OpenSubKey("1640424747")
	require.NoError(t, err)
	_, err = hos.StringValue("stale")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpenRegFile_Errors(t *testing.T) {
	_, err := OpenRegFile(filepath.Join(t.TempDir(), "absent.reg"))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = OpenRegFile(testutil.WriteFile(t, "bad.reg", []byte("[HKLM\\SOFTWARE]\n")))
	require.ErrorIs(t, err, ErrFormat)
	require.ErrorContains(t, err, "missing header")
}
