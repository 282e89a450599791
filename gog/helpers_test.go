package gog

import (
	"github.com/joshuapare/gogscan/registry"
)

const gamesRoot = DefaultRoot

// entry is a Games subkey fixture; nil-valued fields are not written.
type entry struct {
	key    string
	values map[string]string
	order  []string
}

func e(key string, kv ...string) entry {
	en := entry{key: key, values: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		en.values[kv[i]] = kv[i+1]
		en.order = append(en.order, kv[i])
	}
	return en
}

func memStore(entries ...entry) *registry.Memory {
	m := registry.NewMemory().CreateKey(gamesRoot)
	for _, en := range entries {
		p := registry.Join(gamesRoot, en.key)
		m.CreateKey(p)
		for _, name := range en.order {
			m.Set(p, name, en.values[name])
		}
	}
	return m
}

func pid(n int64) *ProductID {
	id := ProductID(n)
	return &id
}

// faultKey wraps a Key and panics or fails on selected value names.
type faultKey struct {
	registry.Key
	panicOn map[string]any
	failOn  map[string]error
}

func (k faultKey) StringValue(name string) (string, error) {
	if v, ok := k.panicOn[name]; ok {
		panic(v)
	}
	if err, ok := k.failOn[name]; ok {
		return "", err
	}
	return k.Key.StringValue(name)
}

// faultStore wraps a Store so chosen entries are served through faultKey
// and chosen entries fail to open.
type faultStore struct {
	registry.Store
	entries   map[string]faultKey
	openFail  map[string]error
	panicRoot bool
	listErr   error
}

func (s faultStore) OpenKey(path string) (registry.Key, error) {
	if s.panicRoot {
		panic("store exploded")
	}
	k, err := s.Store.OpenKey(path)
	if err != nil {
		return nil, err
	}
	return faultRoot{Key: k, s: s}, nil
}

type faultRoot struct {
	registry.Key
	s faultStore
}

func (r faultRoot) SubKeyNames() ([]string, error) {
	if r.s.listErr != nil {
		return nil, r.s.listErr
	}
	return r.Key.SubKeyNames()
}

func (r faultRoot) OpenSubKey(name string) (registry.Key, error) {
	if err, ok := r.s.openFail[name]; ok {
		return nil, err
	}
	k, err := r.Key.OpenSubKey(name)
	if err != nil {
		return nil, err
	}
	if fk, ok := r.s.entries[name]; ok {
		fk.Key = k
		return fk, nil
	}
	return k, nil
}
