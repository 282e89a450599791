package gog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/gogscan/internal/pathnorm"
	"github.com/joshuapare/gogscan/registry"
)

// Value names GOG Galaxy writes under each Games entry.
const (
	ValueGameID        = "gameID"
	ValueGameName      = "gameName"
	ValuePath          = "path"
	ValueBuildID       = "buildId"
	ValueDependsOn     = "dependsOn"
	ValueExe           = "exe"
	ValueLaunchCommand = "launchCommand"
	ValueVersion       = "ver"
)

// ParseEntry validates one Games entry. name is the entry's key name and
// key its open handle. The result is a Record, or a Diagnostic naming the
// first field that failed; panics raised by key are recovered.
func ParseEntry(name string, key registry.Key, norm pathnorm.Normalizer) (res Result) {
	path := name
	defer func() {
		if r := recover(); r != nil {
			res = Diagnostic{Severity: SeverityFault, Path: path, Msg: "unexpected fault reading entry", Err: panicError(r)}
		}
	}()
	path = key.Path()

	id, diag, ok := resolveID(name, key, path)
	if !ok {
		return diag
	}

	rec := Record{ID: id, Source: path}

	gameName, diag, ok := required(key, path, ValueGameName)
	if !ok {
		return diag
	}
	rec.Name = gameName

	installPath, diag, ok := required(key, path, ValuePath)
	if !ok {
		return diag
	}
	rec.InstallPath = norm.Normalize(installPath)

	build, diag, ok := required(key, path, ValueBuildID)
	if !ok {
		return diag
	}
	marker, err := strconv.ParseUint(strings.TrimSpace(build), 10, 64)
	if err != nil {
		return Diagnostic{
			Severity: SeverityEntry,
			Path:     path,
			Msg:      fmt.Sprintf("%s %q is not an unsigned integer", ValueBuildID, build),
			Err:      err,
		}
	}
	rec.BuildMarker = marker

	if dep, ok := optional(key, ValueDependsOn); ok {
		if depID, err := parseProductID(dep); err == nil {
			rec.DependsOn = &depID
		}
	}
	rec.Executable, _ = optional(key, ValueExe)
	rec.LaunchCommand, _ = optional(key, ValueLaunchCommand)
	rec.Version, _ = optional(key, ValueVersion)

	return rec
}

// resolveID parses both the entry name and the gameID value. The gameID
// value wins when both parse; either alone is used as a fallback.
func resolveID(name string, key registry.Key, path string) (ProductID, Diagnostic, bool) {
	fromName, nameErr := parseProductID(name)
	if nameErr != nil {
		nameErr = fmt.Errorf("entry name %q is not a product id: %w", name, nameErr)
	}

	var fromField ProductID
	raw, fieldErr := key.StringValue(ValueGameID)
	switch {
	case errors.Is(fieldErr, registry.ErrNotFound):
		fieldErr = fmt.Errorf("missing %s", ValueGameID)
	case fieldErr != nil:
		fieldErr = fmt.Errorf("read %s: %w", ValueGameID, fieldErr)
	default:
		if fromField, fieldErr = parseProductID(raw); fieldErr != nil {
			fieldErr = fmt.Errorf("%s %q is not a product id: %w", ValueGameID, raw, fieldErr)
		}
	}

	switch {
	case nameErr != nil && fieldErr != nil:
		return 0, Diagnostic{
			Severity: SeverityEntry,
			Path:     path,
			Msg:      nameErr.Error() + "; " + fieldErr.Error(),
			Err:      errors.Join(nameErr, fieldErr),
		}, false
	case fieldErr == nil:
		return fromField, Diagnostic{}, true
	default:
		return fromName, Diagnostic{}, true
	}
}

// required reads a value that must be present and non-blank.
func required(key registry.Key, path, name string) (string, Diagnostic, bool) {
	v, err := key.StringValue(name)
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return "", Diagnostic{Severity: SeverityEntry, Path: path, Msg: "missing " + name}, false
	case errors.Is(err, registry.ErrTypeMismatch):
		return "", Diagnostic{Severity: SeverityEntry, Path: path, Msg: name + " is not a string value", Err: err}, false
	case err != nil:
		return "", Diagnostic{Severity: SeverityFault, Path: path, Msg: "read " + name, Err: err}, false
	case strings.TrimSpace(v) == "":
		return "", Diagnostic{Severity: SeverityEntry, Path: path, Msg: "missing " + name + " (empty)"}, false
	}
	return v, Diagnostic{}, true
}

// optional reads a value that never fails the entry. Blank strings count as
// absent.
func optional(key registry.Key, name string) (string, bool) {
	v, err := key.StringValue(name)
	if err != nil || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func parseProductID(s string) (ProductID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return ProductID(n), nil
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
