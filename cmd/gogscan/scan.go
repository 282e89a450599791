package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/joshuapare/gogscan/gog"
	"github.com/joshuapare/gogscan/internal/config"
	"github.com/joshuapare/gogscan/internal/logger"
	"github.com/joshuapare/gogscan/registry"
)

var scanStrict bool

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "List installed GOG games and their DLC",
	Long: `The scan command enumerates every entry under the GOG Games key and prints
the games found, each with the DLC that depends on it, followed by any
entries that could not be read.

Without a file the live registry is scanned (Windows only). A file ending in
.reg is read as a regedit export, anything else as a SOFTWARE hive.

Example:
  gogscan scan
  gogscan scan D:\backup\Windows\System32\config\SOFTWARE
  gogscan scan games.reg --orphans report --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd.Context(), cmd.Flags(), args)
	},
}

func init() {
	addScanFlags(scanCmd.Flags())
	rootCmd.AddCommand(scanCmd)
}

func addScanFlags(f *pflag.FlagSet) {
	f.String("source", config.SourceAuto, "Registry source: auto, live, hive or reg")
	f.String("file", "", "Hive or .reg file to scan (same as the positional argument)")
	f.String("root", gog.DefaultRoot, "Key holding the GOG entries")
	f.String("mount", registry.DefaultMount, "HKLM path the hive file represents")
	f.String("orphans", gog.OrphanDrop.String(), "DLC without an installed game: drop or report")
	f.Int("workers", 1, "Entries parsed in parallel")
	f.String("log-format", "text", "Log format: text or json")
	f.BoolVar(&scanStrict, "strict", false, "Exit with status 2 when any diagnostic is reported")
}

func loadConfig(flags *pflag.FlagSet, args []string) (*config.Config, error) {
	if len(args) == 1 {
		if err := flags.Set("file", args[0]); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Flags:      flags,
		FlagKeys:   map[string]string{"log-level": "log.level", "log-format": "log.format"},
	})
	if err != nil {
		return nil, err
	}
	if jsonOut {
		cfg.Output = "json"
	}
	if verbose && !flags.Changed("log-level") {
		cfg.Log.Level = "info"
	}
	return cfg, nil
}

func runScan(ctx context.Context, flags *pflag.FlagSet, args []string) error {
	cfg, err := loadConfig(flags, args)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return err
	}

	source := cfg.ResolveSource()
	printVerbose("Scanning %s (%s)\n", describeSource(source, cfg.File), cfg.Root)

	store, err := openStore(source, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	scanner := gog.NewScanner(store, gog.Options{
		Root:    cfg.Root,
		Workers: cfg.Workers,
		Orphans: cfg.OrphanPolicy(),
		Logger:  logger.L.With("source", source),
	})
	out := scanner.Scan(ctx)

	if cfg.Output == "json" {
		if err := printJSON(newReport(scanner.Root(), source, cfg.File, out)); err != nil {
			return err
		}
	} else if !quiet {
		renderText(os.Stdout, out, newStyles(os.Stdout, !noColor))
	}

	if scanStrict {
		if n := out.Summary().Diagnostics(); n > 0 {
			return &exitError{code: 2, msg: fmt.Sprintf("gogscan: %d diagnostic(s) reported", n)}
		}
	}
	return nil
}

func openStore(source string, cfg *config.Config) (registry.Store, error) {
	switch source {
	case config.SourceLive:
		s, err := registry.OpenLive()
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.SourceHive:
		s, err := registry.OpenHive(cfg.File, registry.HiveOptions{Mount: cfg.Mount})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.SourceReg:
		s, err := registry.OpenRegFile(cfg.File)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}

func describeSource(source, file string) string {
	if source == config.SourceLive {
		return "live registry"
	}
	return source + " " + file
}

// report is the JSON document printed by scan --json.
type report struct {
	Root        string           `json:"root"`
	Source      string           `json:"source"`
	File        string           `json:"file,omitempty"`
	Games       []gog.Record     `json:"games"`
	Diagnostics []gog.Diagnostic `json:"diagnostics"`
	Summary     gog.Summary      `json:"summary"`
}

func newReport(root, source, file string, out gog.Outcome) report {
	r := report{
		Root:        root,
		Source:      source,
		File:        file,
		Games:       out.Records(),
		Diagnostics: out.Diagnostics(),
		Summary:     out.Summary(),
	}
	if r.Games == nil {
		r.Games = []gog.Record{}
	}
	if r.Diagnostics == nil {
		r.Diagnostics = []gog.Diagnostic{}
	}
	return r
}
