package registry

import (
	"fmt"
	"strings"
)

// Memory is an in-memory key tree. Populate it with Set/SetBinary before
// handing it to readers; it is not safe to mutate concurrently with reads.
type Memory struct {
	root *memNode
}

type memNode struct {
	name     string
	children []*memNode
	values   []memValue
}

type memValue struct {
	name   string
	text   string
	binary bool
}

// NewMemory returns an empty tree.
func NewMemory() *Memory {
	return &Memory{root: &memNode{}}
}

// CreateKey creates path and any missing parents.
func (m *Memory) CreateKey(path string) *Memory {
	m.ensure(path)
	return m
}

// Set stores a string value, creating the key if needed.
func (m *Memory) Set(path, name, value string) *Memory {
	m.ensure(path).setValue(memValue{name: name, text: value})
	return m
}

// SetBinary stores a value that is not readable as a string.
func (m *Memory) SetBinary(path, name string) *Memory {
	m.ensure(path).setValue(memValue{name: name, binary: true})
	return m
}

// DeleteKey removes path and everything below it. Missing keys are ignored.
func (m *Memory) DeleteKey(path string) *Memory {
	segs := Split(TrimHive(path))
	if len(segs) == 0 {
		return m
	}
	parent := m.root
	for _, seg := range segs[:len(segs)-1] {
		if parent = parent.child(seg); parent == nil {
			return m
		}
	}
	last := segs[len(segs)-1]
	for i, c := range parent.children {
		if strings.EqualFold(c.name, last) {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	return m
}

// DeleteValue removes a value if both the key and the value exist.
func (m *Memory) DeleteValue(path, name string) *Memory {
	n := m.root
	for _, seg := range Split(TrimHive(path)) {
		if n = n.child(seg); n == nil {
			return m
		}
	}
	for i := range n.values {
		if strings.EqualFold(n.values[i].name, name) {
			n.values = append(n.values[:i], n.values[i+1:]...)
			break
		}
	}
	return m
}

func (m *Memory) ensure(path string) *memNode {
	n := m.root
	for _, seg := range Split(TrimHive(path)) {
		child := n.child(seg)
		if child == nil {
			child = &memNode{name: seg}
			n.children = append(n.children, child)
		}
		n = child
	}
	return n
}

func (n *memNode) child(name string) *memNode {
	for _, c := range n.children {
		if strings.EqualFold(c.name, name) {
			return c
		}
	}
	return nil
}

func (n *memNode) setValue(v memValue) {
	for i := range n.values {
		if strings.EqualFold(n.values[i].name, v.name) {
			n.values[i] = v
			return
		}
	}
	n.values = append(n.values, v)
}

// OpenKey implements Store.
func (m *Memory) OpenKey(path string) (Key, error) {
	n := m.root
	segs := Split(TrimHive(path))
	for _, seg := range segs {
		if n = n.child(seg); n == nil {
			return nil, notFound(fmt.Sprintf("key %q", path))
		}
	}
	return &memKey{node: n, path: strings.Join(segs, `\`)}, nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

type memKey struct {
	node *memNode
	path string
}

func (k *memKey) SubKeyNames() ([]string, error) {
	names := make([]string, len(k.node.children))
	for i, c := range k.node.children {
		names[i] = c.name
	}
	return names, nil
}

func (k *memKey) OpenSubKey(name string) (Key, error) {
	c := k.node.child(name)
	if c == nil {
		return nil, notFound(fmt.Sprintf("key %q", Join(k.path, name)))
	}
	return &memKey{node: c, path: Join(k.path, c.name)}, nil
}

func (k *memKey) StringValue(name string) (string, error) {
	for _, v := range k.node.values {
		if !strings.EqualFold(v.name, name) {
			continue
		}
		if v.binary {
			return "", newError(ErrKindType, fmt.Sprintf("registry: value %q of %s is not a string", name, k.path), nil)
		}
		return v.text, nil
	}
	return "", notFound(fmt.Sprintf("value %q of %s", name, k.path))
}

func (k *memKey) Path() string { return k.path }

func (k *memKey) Close() error { return nil }
