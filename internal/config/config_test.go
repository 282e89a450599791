package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/gogscan/gog"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, gog.OrphanDrop, cfg.OrphanPolicy())
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gogscan.yaml")
	require.NoError(t, os.WriteFile(file, []byte("source: hive\nfile: SOFTWARE\nworkers: 2\nlog:\n  level: info\n"), 0o600))

	t.Setenv("GOGSCAN_WORKERS", "6")
	t.Setenv("GOGSCAN_LOG_FORMAT", "json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("orphans", "drop", "")
	fs.String("log-level", "warn", "")
	fs.Int("workers", 1, "")
	require.NoError(t, fs.Parse([]string{"--orphans", "report"}))

	cfg, err := Load(LoadOptions{
		ConfigFile: file,
		Flags:      fs,
		FlagKeys:   map[string]string{"log-level": "log.level"},
	})
	require.NoError(t, err)

	assert.Equal(t, SourceHive, cfg.Source) // file
	assert.Equal(t, "SOFTWARE", cfg.File)   // file
	assert.Equal(t, 6, cfg.Workers)         // env beats file; unchanged flag does not override
	assert.Equal(t, "info", cfg.Log.Level)  // file beats unchanged flag default
	assert.Equal(t, "json", cfg.Log.Format) // env
	assert.Equal(t, gog.OrphanReport, cfg.OrphanPolicy())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad source", func(c *Config) { c.Source = "cloud" }, `unknown source "cloud"`},
		{"hive without file", func(c *Config) { c.Source = SourceHive }, `source "hive" requires a file`},
		{"bad orphans", func(c *Config) { c.Orphans = "keep" }, `unknown orphan policy "keep"`},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers must be at least 1"},
		{"bad output", func(c *Config) { c.Output = "yaml" }, `unknown output "yaml"`},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, `unknown log format "xml"`},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, `unknown log level "loud"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		source, file, want string
	}{
		{SourceAuto, "", SourceLive},
		{SourceAuto, `D:\backup\games.REG`, SourceReg},
		{SourceAuto, `D:\backup\SOFTWARE`, SourceHive},
		{SourceAuto, `D:\backup.d\SOFTWARE`, SourceHive},
		{SourceReg, "x", SourceReg},
		{SourceLive, "", SourceLive},
	}
	for _, tt := range tests {
		c := Config{Source: tt.source, File: tt.file}
		assert.Equal(t, tt.want, c.ResolveSource(), "%s %s", tt.source, tt.file)
	}
}
