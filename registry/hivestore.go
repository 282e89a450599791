package registry

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joshuapare/gogscan/hive"
)

// DefaultMount is the HKLM subkey a SOFTWARE hive file represents.
const DefaultMount = "SOFTWARE"

// HiveOptions configures a hive-file backed store.
type HiveOptions struct {
	// Mount is the HKLM-relative path the hive's root key stands for. It is
	// stripped from requested paths; paths outside it are not found. Empty
	// means requested paths are hive-relative.
	Mount string
}

// HiveStore serves keys from an offline hive file.
type HiveStore struct {
	h     *hive.Hive
	mount []string
}

// OpenHive opens the hive file at path.
func OpenHive(path string, opts HiveOptions) (*HiveStore, error) {
	h, err := hive.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, newError(ErrKindAccess, "registry: open hive "+path, err)
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, newError(ErrKindNotFound, "registry: open hive "+path, err)
		}
		return nil, newError(ErrKindFormat, "registry: open hive "+path, err)
	}
	return NewHiveStore(h, opts), nil
}

// NewHiveStore wraps an already opened hive. The store takes ownership and
// closes h on Close.
func NewHiveStore(h *hive.Hive, opts HiveOptions) *HiveStore {
	return &HiveStore{h: h, mount: Split(TrimHive(opts.Mount))}
}

// OpenKey implements Store.
func (s *HiveStore) OpenKey(path string) (Key, error) {
	segs := Split(TrimHive(path))
	if len(segs) < len(s.mount) {
		return nil, notFound(fmt.Sprintf("key %q (hive is mounted at %s)", path, strings.Join(s.mount, `\`)))
	}
	for i, m := range s.mount {
		if !strings.EqualFold(segs[i], m) {
			return nil, notFound(fmt.Sprintf("key %q (hive is mounted at %s)", path, strings.Join(s.mount, `\`)))
		}
	}

	k, err := s.h.Find(strings.Join(segs[len(s.mount):], `\`))
	if err != nil {
		return nil, mapHiveError(fmt.Sprintf("registry: open key %q", path), err)
	}
	return &hiveKey{k: k, path: strings.Join(segs, `\`)}, nil
}

// Close implements Store.
func (s *HiveStore) Close() error { return s.h.Close() }

type hiveKey struct {
	k    hive.Key
	path string
}

func (k *hiveKey) SubKeyNames() ([]string, error) {
	names, err := k.k.SubkeyNames()
	if err != nil {
		return nil, mapHiveError("registry: list subkeys of "+k.path, err)
	}
	return names, nil
}

func (k *hiveKey) OpenSubKey(name string) (Key, error) {
	child, err := k.k.Subkey(name)
	if err != nil {
		return nil, mapHiveError(fmt.Sprintf("registry: open key %q", Join(k.path, name)), err)
	}
	childName, err := child.Name()
	if err != nil {
		childName = name
	}
	return &hiveKey{k: child, path: Join(k.path, childName)}, nil
}

func (k *hiveKey) StringValue(name string) (string, error) {
	v, err := k.k.Value(name)
	if err != nil {
		return "", mapHiveError(fmt.Sprintf("registry: value %q of %s", name, k.path), err)
	}
	s, err := v.AsString()
	if err != nil {
		return "", mapHiveError(fmt.Sprintf("registry: value %q of %s", name, k.path), err)
	}
	return s, nil
}

func (k *hiveKey) Path() string { return k.path }

func (k *hiveKey) Close() error { return nil }

func mapHiveError(msg string, err error) error {
	switch {
	case errors.Is(err, hive.ErrKeyNotFound), errors.Is(err, hive.ErrValueNotFound):
		return newError(ErrKindNotFound, msg, err)
	case errors.Is(err, hive.ErrTypeMismatch):
		return newError(ErrKindType, msg, err)
	default:
		return newError(ErrKindFormat, msg, err)
	}
}
