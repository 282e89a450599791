//go:build !windows

package registry

// LiveStore is only available on Windows.
type LiveStore struct{}

// OpenLive fails with ErrUnsupported off Windows.
func OpenLive() (*LiveStore, error) {
	return nil, newError(ErrKindUnsupported, "registry: live registry requires windows", nil)
}

// OpenKey implements Store.
func (s *LiveStore) OpenKey(path string) (Key, error) {
	return nil, newError(ErrKindUnsupported, "registry: live registry requires windows", nil)
}

// Close implements Store.
func (s *LiveStore) Close() error { return nil }
