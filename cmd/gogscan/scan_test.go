package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/gogscan/internal/testutil"
)

func fixtureHive(t *testing.T) string {
	t.Helper()
	return testutil.WriteHive(t, testutil.SoftwareHive(
		testutil.Entry{Key: "1207664643", GameID: "1207664643", GameName: "The Witcher 3: Wild Hunt", Path: `c:/GOG Games/The Witcher 3/`, BuildID: "58187341906288957"},
		testutil.Entry{Key: "1640424747", GameID: "1640424747", GameName: "Hearts of Stone", Path: `C:\GOG Games\The Witcher 3`, BuildID: "2", DependsOn: "1207664643"},
		testutil.Entry{Key: "1495134320", GameID: "1495134320", GameName: "Cyberpunk Bonus", Path: `C:\GOG Games\CP`, BuildID: "1", DependsOn: "1423049311"},
		testutil.Entry{Key: "broken", GameName: "No Id"},
	))
}

const fixtureReg = "Windows Registry Editor Version 5.00\n\n" +
	"[HKEY_LOCAL_MACHINE\\SOFTWARE\\WOW6432Node\\GOG.com\\Games\\1207658924]\n" +
	"\"gameID\"=\"1207658924\"\n" +
	"\"gameName\"=\"Unreal Tournament 2004\"\n" +
	"\"path\"=\"C:\\\\GOG Games\\\\UT2004\"\n" +
	"\"buildId\"=\"55291\"\n"

func TestScanCommand(t *testing.T) {
	hivePath := fixtureHive(t)
	regPath := testutil.WriteFile(t, "games.reg", []byte(fixtureReg))

	tests := []struct {
		name           string
		args           []string
		flags          []string
		json           bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:           "hive text",
			args:           []string{hivePath},
			wantContain:    []string{"Games", "1207664643", "The Witcher 3: Wild Hunt", `C:\GOG Games\The Witcher 3`, "└─ 1640424747  Hearts of Stone", "Diagnostics", "[entry]", "missing gameID", "1 game(s), 1 dlc, 1 diagnostic(s)"},
			wantNotContain: []string{"Cyberpunk Bonus", "[orphan]"},
		},
		{
			name:        "orphans reported",
			args:        []string{hivePath},
			flags:       []string{"--orphans", "report"},
			wantContain: []string{"[orphan]", "dlc 1495134320 (Cyberpunk Bonus) depends on 1423049311", "2 diagnostic(s)"},
		},
		{
			name:        "reg file by extension",
			args:        []string{regPath},
			wantContain: []string{"1207658924", "Unreal Tournament 2004", `C:\GOG Games\UT2004`, "1 game(s), 0 dlc, 0 diagnostic(s)"},
		},
		{
			name:        "explicit source and file flags",
			flags:       []string{"--source", "hive", "--file", hivePath, "--workers", "4"},
			wantContain: []string{"The Witcher 3: Wild Hunt"},
		},
		{
			name:        "custom root not present",
			args:        []string{hivePath},
			flags:       []string{"--root", `SOFTWARE\GOG.com\Games`},
			wantContain: []string{"[scan]", "cannot open games root", "0 game(s)"},
		},
		{
			name:        "json",
			args:        []string{hivePath},
			json:        true,
			wantContain: []string{`"games"`, `"children"`, `"buildId": "58187341906288957"`, `"severity": "entry"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals(t)
			jsonOut = tt.json

			output, err := captureOutput(t, func() error {
				return runScan(context.Background(), scanFlags(t, tt.flags...), tt.args)
			})
			require.NoError(t, err)
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestScanCommand_JSONReport(t *testing.T) {
	resetGlobals(t)
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runScan(context.Background(), scanFlags(t, "--orphans", "report"), []string{fixtureHive(t)})
	})
	require.NoError(t, err)

	doc := assertJSON(t, output)
	assert.Equal(t, "hive", doc["source"])
	assert.Equal(t, `SOFTWARE\WOW6432Node\GOG.com\Games`, doc["root"])

	games := doc["games"].([]any)
	require.Len(t, games, 1)
	w3 := games[0].(map[string]any)
	assert.EqualValues(t, 1207664643, w3["id"])
	require.Len(t, w3["children"], 1)

	summary := doc["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["games"])
	assert.EqualValues(t, 1, summary["dlc"])
	assert.EqualValues(t, 1, summary["entry"])
	assert.EqualValues(t, 1, summary["orphan"])
}

func TestScanCommand_Strict(t *testing.T) {
	resetGlobals(t)
	quiet = true

	fs := scanFlags(t, "--strict")
	output, err := captureOutput(t, func() error {
		return runScan(context.Background(), fs, []string{fixtureHive(t)})
	})
	assert.Empty(t, output)

	var ee *exitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 2, ee.code)
	assert.Contains(t, ee.Error(), "1 diagnostic(s)")

	resetGlobals(t)
	_, err = captureOutput(t, func() error {
		return runScan(context.Background(), scanFlags(t, "--strict"), []string{testutil.WriteFile(t, "ok.reg", []byte(fixtureReg))})
	})
	require.NoError(t, err)
}

func TestScanCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		flags   []string
		wantErr string
	}{
		{"missing hive", []string{filepath.Join(t.TempDir(), "SOFTWARE")}, nil, "registry: open hive"},
		{"not a hive", []string{testutil.WriteFile(t, "junk", []byte("junk"))}, nil, "registry: open hive"},
		{"bad source", nil, []string{"--source", "cloud"}, `unknown source "cloud"`},
		{"bad orphans", nil, []string{"--orphans", "keep"}, `unknown orphan policy "keep"`},
		{"bad log format", nil, []string{"--log-format", "xml"}, `unknown log format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals(t)
			_, err := captureOutput(t, func() error {
				return runScan(context.Background(), scanFlags(t, tt.flags...), tt.args)
			})
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestScanCommand_ConfigFile(t *testing.T) {
	resetGlobals(t)
	hivePath := fixtureHive(t)
	cfgPath := filepath.Join(t.TempDir(), "gogscan.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("file: "+filepath.ToSlash(hivePath)+"\norphans: report\n"), 0o600))
	configFile = cfgPath

	output, err := captureOutput(t, func() error {
		return runScan(context.Background(), scanFlags(t), nil)
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"[orphan]", "The Witcher 3: Wild Hunt"})
}

func TestVersionCommand(t *testing.T) {
	resetGlobals(t)
	output, err := captureOutput(t, func() error {
		return versionCmd.RunE(versionCmd, nil)
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"gogscan dev", "commit: none"})

	jsonOut = true
	output, err = captureOutput(t, func() error {
		return versionCmd.RunE(versionCmd, nil)
	})
	require.NoError(t, err)
	assert.Equal(t, "dev", assertJSON(t, output)["version"])
}
