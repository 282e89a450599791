//go:build windows

package registry

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sys/windows"
	winreg "golang.org/x/sys/windows/registry"
)

// LiveStore reads HKEY_LOCAL_MACHINE of the running system.
type LiveStore struct{}

// OpenLive returns a store over the live registry.
func OpenLive() (*LiveStore, error) { return &LiveStore{}, nil }

// OpenKey implements Store.
func (s *LiveStore) OpenKey(path string) (Key, error) {
	p := TrimHive(path)
	k, err := winreg.OpenKey(winreg.LOCAL_MACHINE, p, winreg.QUERY_VALUE|winreg.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, mapWinError(fmt.Sprintf("registry: open key %q", path), err)
	}
	return &liveKey{k: k, path: p}, nil
}

// Close implements Store.
func (s *LiveStore) Close() error { return nil }

type liveKey struct {
	k    winreg.Key
	path string
}

func (k *liveKey) SubKeyNames() ([]string, error) {
	names, err := k.k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, mapWinError("registry: list subkeys of "+k.path, err)
	}
	return names, nil
}

func (k *liveKey) OpenSubKey(name string) (Key, error) {
	child, err := winreg.OpenKey(k.k, name, winreg.QUERY_VALUE|winreg.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, mapWinError(fmt.Sprintf("registry: open key %q", Join(k.path, name)), err)
	}
	return &liveKey{k: child, path: Join(k.path, name)}, nil
}

func (k *liveKey) StringValue(name string) (string, error) {
	s, _, err := k.k.GetStringValue(name)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, winreg.ErrUnexpectedType) {
		return "", mapWinError(fmt.Sprintf("registry: value %q of %s", name, k.path), err)
	}
	n, _, err := k.k.GetIntegerValue(name)
	if err != nil {
		return "", mapWinError(fmt.Sprintf("registry: value %q of %s", name, k.path), err)
	}
	return strconv.FormatUint(n, 10), nil
}

func (k *liveKey) Path() string { return k.path }

func (k *liveKey) Close() error { return k.k.Close() }

func mapWinError(msg string, err error) error {
	switch {
	case errors.Is(err, winreg.ErrNotExist):
		return newError(ErrKindNotFound, msg, err)
	case errors.Is(err, winreg.ErrUnexpectedType):
		return newError(ErrKindType, msg, err)
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return newError(ErrKindAccess, msg, err)
	default:
		return newError(ErrKindFormat, msg, err)
	}
}
