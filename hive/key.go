package hive

import (
	"fmt"
	"strings"
)

// Key is a registry key inside an opened hive.
type Key struct {
	h   *Hive
	off uint32
	nk  NK
}

// Offset returns the key's cell offset relative to 0x1000.
func (k Key) Offset() uint32 { return k.off }

// NK returns the underlying key node view.
func (k Key) NK() NK { return k.nk }

// Name returns the decoded key name.
func (k Key) Name() (string, error) { return k.nk.Name() }

// Subkeys returns the direct children of k in on-disk (index) order.
func (k Key) Subkeys() ([]Key, error) {
	if k.h.data == nil {
		return nil, ErrClosed
	}
	if k.nk.SubkeyCount() == 0 {
		return nil, nil
	}
	offs, err := subkeyOffsets(k.h.data, k.nk.SubkeyListOffsetRel())
	if err != nil {
		return nil, err
	}
	keys := make([]Key, 0, len(offs))
	for _, off := range offs {
		child, err := k.h.keyAt(off)
		if err != nil {
			return nil, err
		}
		keys = append(keys, child)
	}
	return keys, nil
}

// SubkeyNames returns the decoded names of the direct children of k.
func (k Key) SubkeyNames() ([]string, error) {
	keys, err := k.Subkeys()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, child := range keys {
		name, err := child.Name()
		if err != nil {
			return nil, fmt.Errorf("hive: subkey at 0x%X: %w", child.off, err)
		}
		names = append(names, name)
	}
	return names, nil
}

// Subkey returns the child named name, compared case-insensitively.
func (k Key) Subkey(name string) (Key, error) {
	keys, err := k.Subkeys()
	if err != nil {
		return Key{}, err
	}
	for _, child := range keys {
		childName, err := child.Name()
		if err != nil {
			continue
		}
		if strings.EqualFold(childName, name) {
			return child, nil
		}
	}
	return Key{}, fmt.Errorf("%w: %q", ErrKeyNotFound, name)
}

// Values returns the values attached to k in on-disk order.
func (k Key) Values() ([]Value, error) {
	if k.h.data == nil {
		return nil, ErrClosed
	}
	offs, err := valueOffsets(k.h.data, k.nk.ValueListOffsetRel(), int(k.nk.ValueCount()))
	if err != nil {
		return nil, err
	}
	values := make([]Value, 0, len(offs))
	for _, off := range offs {
		v, err := k.h.valueAt(off)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Value returns the value named name, compared case-insensitively. The empty
// name selects the default value.
func (k Key) Value(name string) (Value, error) {
	values, err := k.Values()
	if err != nil {
		return Value{}, err
	}
	for _, v := range values {
		vName, err := v.Name()
		if err != nil {
			continue
		}
		if strings.EqualFold(vName, name) {
			return v, nil
		}
	}
	return Value{}, fmt.Errorf("%w: %q", ErrValueNotFound, name)
}

// Value is a registry value inside an opened hive.
type Value struct {
	h  *Hive
	vk VK
}

// Name returns the decoded value name.
func (v Value) Name() (string, error) { return v.vk.Name() }

// Type returns the registry value type (REG_SZ = 1, ...).
func (v Value) Type() uint32 { return v.vk.Type() }

// Data returns the raw value bytes.
func (v Value) Data() ([]byte, error) {
	if v.h.data == nil {
		return nil, ErrClosed
	}
	return v.vk.Data(v.h.data)
}

// AsString returns the value rendered as text; see StringData.
func (v Value) AsString() (string, error) {
	data, err := v.Data()
	if err != nil {
		return "", err
	}
	return StringData(v.vk.Type(), data)
}
