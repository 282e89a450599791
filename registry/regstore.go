package registry

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/gogscan/hive"
	"github.com/joshuapare/gogscan/internal/format"
	"github.com/joshuapare/gogscan/internal/regtext"
)

// OpenRegFile loads a regedit export into an in-memory tree. HKLM prefixes
// are stripped from section paths; sections and values marked for deletion
// are applied in file order.
func OpenRegFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrPermission):
			return nil, newError(ErrKindAccess, "registry: read "+path, err)
		case errors.Is(err, os.ErrNotExist):
			return nil, newError(ErrKindNotFound, "registry: read "+path, err)
		}
		return nil, newError(ErrKindFormat, "registry: read "+path, err)
	}
	m, err := ParseRegText(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseRegText builds a tree from the bytes of a .reg export.
func ParseRegText(data []byte) (*Memory, error) {
	f, err := regtext.Parse(data)
	if err != nil {
		return nil, newError(ErrKindFormat, "registry: parse .reg", err)
	}

	m := NewMemory()
	for _, sec := range f.Sections {
		if sec.Delete {
			m.DeleteKey(sec.Path)
			continue
		}
		m.CreateKey(sec.Path)
		for _, v := range sec.Values {
			switch {
			case v.Delete:
				m.DeleteValue(sec.Path, v.Name)
			case v.Type == format.REGSz && v.Data == nil:
				m.Set(sec.Path, v.Name, v.Text)
			default:
				s, err := hive.StringData(v.Type, v.Data)
				if err != nil {
					m.SetBinary(sec.Path, v.Name)
					continue
				}
				m.Set(sec.Path, v.Name, s)
			}
		}
	}
	return m, nil
}
