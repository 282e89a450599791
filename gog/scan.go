package gog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/gogscan/internal/pathnorm"
	"github.com/joshuapare/gogscan/registry"
)

// DefaultRoot is where the 64-bit registry view exposes GOG Galaxy's
// 32-bit Games key.
const DefaultRoot = `SOFTWARE\WOW6432Node\GOG.com\Games`

// Options configures a Scanner. The zero value scans DefaultRoot
// sequentially, drops orphan DLC and discards logs.
type Options struct {
	Root string
	// Workers > 1 parses entries concurrently. The store's keys must then
	// tolerate concurrent OpenSubKey calls; every backend in package
	// registry does.
	Workers    int
	Orphans    OrphanPolicy
	Normalizer pathnorm.Normalizer
	Logger     *slog.Logger
}

// Scanner reads GOG entries from a store. It holds no mutable state, so
// concurrent Scan calls are safe.
type Scanner struct {
	store registry.Store
	opts  Options
}

// NewScanner returns a scanner over store.
func NewScanner(store registry.Store, opts Options) *Scanner {
	if opts.Root == "" {
		opts.Root = DefaultRoot
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Normalizer == nil {
		opts.Normalizer = pathnorm.Windows{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{store: store, opts: opts}
}

// Root returns the key path the scanner enumerates.
func (s *Scanner) Root() string { return s.opts.Root }

// Scan enumerates the root key and returns the grouped outcome. It never
// panics; ctx is checked between entries.
func (s *Scanner) Scan(ctx context.Context) (out Outcome) {
	start := time.Now()
	log := s.opts.Logger.With("root", s.opts.Root)

	defer func() {
		if r := recover(); r != nil {
			log.Error("scan panicked", "panic", r)
			out = single(Diagnostic{Severity: SeverityFault, Path: s.opts.Root, Msg: "exception looking for games", Err: panicError(r)})
		}
	}()

	if err := ctx.Err(); err != nil {
		return single(Diagnostic{Severity: SeverityScan, Path: s.opts.Root, Msg: "scan cancelled", Err: err})
	}

	root, err := s.store.OpenKey(s.opts.Root)
	if err != nil {
		log.Warn("cannot open games root", "err", err)
		return single(Diagnostic{Severity: SeverityScan, Path: s.opts.Root, Msg: "cannot open games root", Err: err})
	}
	defer root.Close()

	names, err := root.SubKeyNames()
	if err != nil {
		return single(Diagnostic{Severity: SeverityScan, Path: root.Path(), Msg: "cannot list games", Err: err})
	}
	if len(names) == 0 {
		return single(Diagnostic{Severity: SeverityScan, Path: root.Path(), Msg: "no games registered under root"})
	}
	log.Debug("enumerated entries", "count", len(names), "workers", s.opts.Workers)

	results, err := s.parseAll(ctx, root, names)
	if err != nil {
		return single(Diagnostic{Severity: SeverityScan, Path: root.Path(), Msg: "scan cancelled", Err: err})
	}

	out = Group(results, s.opts.Orphans)
	sum := out.Summary()
	log.Info("scan complete",
		"entries", len(names),
		"games", sum.Games,
		"dlc", sum.DLC,
		"diagnostics", sum.Diagnostics(),
		"elapsed", time.Since(start))
	return out
}

// parseAll parses every entry into results[i], sequentially or on a bounded
// errgroup. Only context cancellation is returned as an error.
func (s *Scanner) parseAll(ctx context.Context, root registry.Key, names []string) ([]Result, error) {
	results := make([]Result, len(names))

	if s.opts.Workers <= 1 {
		for i, name := range names {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = s.parseOne(root, name)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.parseOne(root, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// parseOne opens and parses a single entry. Any panic, including one from
// the root key itself, is contained here so workers never crash the process.
func (s *Scanner) parseOne(root registry.Key, name string) (res Result) {
	path := name
	defer func() {
		if r := recover(); r != nil {
			s.opts.Logger.Warn("entry panicked", "entry", path, "panic", r)
			res = Diagnostic{Severity: SeverityFault, Path: path, Msg: "unexpected fault reading entry", Err: panicError(r)}
		}
	}()
	path = registry.Join(root.Path(), name)

	k, err := root.OpenSubKey(name)
	if err != nil {
		return Diagnostic{Severity: SeverityFault, Path: path, Msg: "cannot open entry", Err: err}
	}
	defer k.Close()

	res = ParseEntry(name, k, s.opts.Normalizer)
	switch r := res.(type) {
	case Record:
		s.opts.Logger.Debug("parsed entry", "entry", path, "id", r.ID, "dlc", r.IsDLC())
	case Diagnostic:
		s.opts.Logger.Debug("rejected entry", "entry", path, "reason", r.Msg)
	}
	return res
}

func single(d Diagnostic) Outcome { return Outcome{Results: []Result{d}} }
