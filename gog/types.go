package gog

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ProductID identifies a GOG catalog product (a game or a DLC).
type ProductID int64

func (id ProductID) String() string { return strconv.FormatInt(int64(id), 10) }

// Result is either a Record or a Diagnostic.
type Result interface {
	isResult()
}

// Record is one validated Games entry. Children is only ever set on games
// and holds the DLC that depend on them.
type Record struct {
	ID          ProductID  `json:"id"`
	Name        string     `json:"name"`
	InstallPath string     `json:"installPath"`
	BuildMarker uint64     `json:"buildId,string"`
	DependsOn   *ProductID `json:"dependsOn,omitempty"`

	// Optional launch metadata. Missing or unreadable values leave these empty.
	Executable    string `json:"exe,omitempty"`
	LaunchCommand string `json:"launchCommand,omitempty"`
	Version       string `json:"version,omitempty"`

	// Source is the store path the record was read from.
	Source string `json:"source"`

	Children []Record `json:"children,omitempty"`
}

func (Record) isResult() {}

// IsDLC reports whether the record depends on another product.
func (r Record) IsDLC() bool { return r.DependsOn != nil }

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityScan   Severity = iota // the scan could not proceed at all
	SeverityEntry                  // one entry failed validation
	SeverityFault                  // unexpected store failure or panic
	SeverityOrphan                 // DLC whose base game is not installed
)

func (s Severity) String() string {
	switch s {
	case SeverityScan:
		return "scan"
	case SeverityEntry:
		return "entry"
	case SeverityFault:
		return "fault"
	case SeverityOrphan:
		return "orphan"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText renders the severity name.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Diagnostic reports why an entry, or the whole scan, produced no record.
type Diagnostic struct {
	Severity Severity
	Path     string // store path of the failing key
	Msg      string
	Err      error // underlying cause, may be nil
}

func (Diagnostic) isResult() {}

func (d Diagnostic) Error() string {
	s := d.Msg
	if d.Path != "" {
		s = d.Path + ": " + s
	}
	if d.Err != nil {
		s += ": " + d.Err.Error()
	}
	return s
}

func (d Diagnostic) Unwrap() error { return d.Err }

// MarshalJSON includes the cause as text.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	out := struct {
		Severity Severity `json:"severity"`
		Path     string   `json:"path,omitempty"`
		Message  string   `json:"message"`
		Cause    string   `json:"cause,omitempty"`
	}{Severity: d.Severity, Path: d.Path, Message: d.Msg}
	if d.Err != nil {
		out.Cause = d.Err.Error()
	}
	return json.Marshal(out)
}

// Outcome is the ordered result of one scan: diagnostics first, then games
// in enumeration order.
type Outcome struct {
	Results []Result
}

// Records returns the top-level game records.
func (o Outcome) Records() []Record {
	var out []Record
	for _, r := range o.Results {
		if rec, ok := r.(Record); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Diagnostics returns every diagnostic in order.
func (o Outcome) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for _, r := range o.Results {
		if d, ok := r.(Diagnostic); ok {
			out = append(out, d)
		}
	}
	return out
}

// Summary counts results by kind.
type Summary struct {
	Games  int `json:"games"`
	DLC    int `json:"dlc"` // attached to a game
	Scan   int `json:"scan"`
	Entry  int `json:"entry"`
	Fault  int `json:"fault"`
	Orphan int `json:"orphan"`
}

// Diagnostics is the total number of diagnostics.
func (s Summary) Diagnostics() int { return s.Scan + s.Entry + s.Fault + s.Orphan }

// Summary tallies the outcome.
func (o Outcome) Summary() Summary {
	var s Summary
	for _, r := range o.Results {
		switch r := r.(type) {
		case Record:
			s.Games++
			s.DLC += len(r.Children)
		case Diagnostic:
			switch r.Severity {
			case SeverityScan:
				s.Scan++
			case SeverityEntry:
				s.Entry++
			case SeverityFault:
				s.Fault++
			case SeverityOrphan:
				s.Orphan++
			}
		}
	}
	return s
}
