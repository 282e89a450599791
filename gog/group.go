package gog

import "fmt"

// OrphanPolicy decides what happens to DLC whose base game is missing.
type OrphanPolicy int

const (
	// OrphanDrop silently discards orphan DLC.
	OrphanDrop OrphanPolicy = iota
	// OrphanReport turns each orphan DLC into a SeverityOrphan diagnostic.
	OrphanReport
)

func (p OrphanPolicy) String() string {
	switch p {
	case OrphanDrop:
		return "drop"
	case OrphanReport:
		return "report"
	default:
		return fmt.Sprintf("orphans(%d)", int(p))
	}
}

// ParseOrphanPolicy accepts "drop" or "report".
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch s {
	case "", "drop":
		return OrphanDrop, nil
	case "report":
		return OrphanReport, nil
	default:
		return 0, fmt.Errorf("gog: unknown orphan policy %q (want drop or report)", s)
	}
}

// Group folds DLC records into the games they depend on. Diagnostics keep
// their relative order and come first, followed by orphan diagnostics when
// policy is OrphanReport, then games in enumeration order. DLC never
// appear at the top level and grouping is one level deep.
func Group(results []Result, policy OrphanPolicy) Outcome {
	var (
		diags []Result
		games []Record
		dlcs  []Record
	)
	for _, r := range results {
		switch r := r.(type) {
		case Diagnostic:
			diags = append(diags, r)
		case Record:
			if r.IsDLC() {
				dlcs = append(dlcs, r)
			} else {
				games = append(games, r)
			}
		}
	}

	byGame := make(map[ProductID][]Record, len(games))
	known := make(map[ProductID]bool, len(games))
	for _, g := range games {
		known[g.ID] = true
	}
	var orphans []Result
	for _, d := range dlcs {
		d.Children = nil
		if known[*d.DependsOn] {
			byGame[*d.DependsOn] = append(byGame[*d.DependsOn], d)
			continue
		}
		if policy == OrphanReport {
			orphans = append(orphans, Diagnostic{
				Severity: SeverityOrphan,
				Path:     d.Source,
				Msg:      fmt.Sprintf("dlc %d (%s) depends on %d, which is not installed", d.ID, d.Name, *d.DependsOn),
			})
		}
	}

	out := make([]Result, 0, len(diags)+len(orphans)+len(games))
	out = append(out, diags...)
	out = append(out, orphans...)
	for _, g := range games {
		if children := byGame[g.ID]; len(children) > 0 {
			g.Children = children
		} else {
			g.Children = nil
		}
		out = append(out, g)
	}
	return Outcome{Results: out}
}
