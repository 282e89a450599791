// Package config loads gogscan settings from defaults, an optional config
// file, GOGSCAN_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joshuapare/gogscan/gog"
	"github.com/joshuapare/gogscan/registry"
)

// EnvPrefix is prepended to upper-cased keys, so "log.level" is read from
// GOGSCAN_LOG_LEVEL.
const EnvPrefix = "GOGSCAN"

// Sources accepted by the source key.
const (
	SourceAuto = "auto"
	SourceLive = "live"
	SourceHive = "hive"
	SourceReg  = "reg"
)

// Config is the resolved configuration.
type Config struct {
	Source  string `mapstructure:"source"`
	File    string `mapstructure:"file"`
	Root    string `mapstructure:"root"`
	Mount   string `mapstructure:"mount"`
	Orphans string `mapstructure:"orphans"`
	Workers int    `mapstructure:"workers"`
	Output  string `mapstructure:"output"`
	Log     Log    `mapstructure:"log"`
}

// Log holds logger settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source:  SourceAuto,
		Root:    gog.DefaultRoot,
		Mount:   registry.DefaultMount,
		Orphans: gog.OrphanDrop.String(),
		Workers: 1,
		Output:  "text",
		Log:     Log{Level: "warn", Format: "text"},
	}
}

// LoadOptions controls Load.
type LoadOptions struct {
	// ConfigFile is read when set. A missing file is an error.
	ConfigFile string
	// Flags are bound by their config key names; unchanged flags do not
	// override file or environment values.
	Flags *pflag.FlagSet
	// FlagKeys maps flag names to config keys where they differ.
	FlagKeys map[string]string
}

// Load resolves the configuration and validates it.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("source", def.Source)
	v.SetDefault("file", def.File)
	v.SetDefault("root", def.Root)
	v.SetDefault("mount", def.Mount)
	v.SetDefault("orphans", def.Orphans)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("output", def.Output)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.Flags != nil {
		var bindErr error
		opts.Flags.VisitAll(func(f *pflag.Flag) {
			key := f.Name
			if k, ok := opts.FlagKeys[f.Name]; ok {
				key = k
			}
			if !isKnownKey(key) {
				return
			}
			if err := v.BindPFlag(key, f); err != nil {
				bindErr = errors.Join(bindErr, err)
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("config: bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var knownKeys = []string{"source", "file", "root", "mount", "orphans", "workers", "output", "log.level", "log.format"}

func isKnownKey(k string) bool {
	for _, known := range knownKeys {
		if known == k {
			return true
		}
	}
	return false
}

// Validate rejects values the scanner cannot act on.
func (c Config) Validate() error {
	var errs []error
	switch c.Source {
	case SourceAuto, SourceLive:
	case SourceHive, SourceReg:
		if c.File == "" {
			errs = append(errs, fmt.Errorf("source %q requires a file", c.Source))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source %q (want auto, live, hive or reg)", c.Source))
	}
	if _, err := gog.ParseOrphanPolicy(c.Orphans); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	switch c.Output {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown output %q (want text or json)", c.Output))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// OrphanPolicy returns the parsed orphans setting. Call after Validate.
func (c Config) OrphanPolicy() gog.OrphanPolicy {
	p, _ := gog.ParseOrphanPolicy(c.Orphans)
	return p
}

// ResolveSource turns SourceAuto into a concrete source: a .reg file, a hive
// file, or the live registry when no file is given.
func (c Config) ResolveSource() string {
	if c.Source != SourceAuto {
		return c.Source
	}
	switch {
	case c.File == "":
		return SourceLive
	case strings.EqualFold(fileExt(c.File), ".reg"):
		return SourceReg
	default:
		return SourceHive
	}
}

func fileExt(p string) string {
	i := strings.LastIndexAny(p, `./\`)
	if i < 0 || p[i] != '.' {
		return ""
	}
	return p[i:]
}
