// Package hivegen builds small, valid REGF images from a key tree. It exists
// so tests can exercise the hive reader and the registry backends without
// shipping binary fixtures.
package hivegen

import (
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/gogscan/internal/format"
)

// IndexKind selects the subkey index variant written for a node.
type IndexKind int

const (
	IndexLH IndexKind = iota // default; what modern Windows writes
	IndexLF
	IndexLI
	IndexRI // ri over li leaves of RILeafSize entries
)

// RILeafSize is the number of entries per leaf under an ri index.
const RILeafSize = 2

// Node describes one key.
type Node struct {
	Name     string
	Values   []Value
	Children []*Node
	Index    IndexKind
}

// Value describes one registry value.
type Value struct {
	Name string
	Type uint32
	Data []byte
}

// Key returns a node with the given name, values and children.
func Key(name string, values []Value, children ...*Node) *Node {
	return &Node{Name: name, Values: values, Children: children}
}

// Path returns a chain of nested keys ending in leaf. Path([]string{"A","B"}, leaf)
// yields A -> B -> leaf.
func Path(segments []string, leaf *Node) *Node {
	n := leaf
	for i := len(segments) - 1; i >= 0; i-- {
		n = Key(segments[i], nil, n)
	}
	return n
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// String returns a REG_SZ value with a NUL terminator.
func String(name, s string) Value {
	enc, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	return Value{Name: name, Type: format.REGSz, Data: append(enc, 0, 0)}
}

// DWORD returns a REG_DWORD value.
func DWORD(name string, v uint32) Value {
	data := make([]byte, format.DWORDSize)
	format.PutU32(data, 0, v)
	return Value{Name: name, Type: format.REGDword, Data: data}
}

// QWORD returns a REG_QWORD value.
func QWORD(name string, v uint64) Value {
	data := make([]byte, format.QWORDSize)
	format.PutU32(data, 0, uint32(v))
	format.PutU32(data, 4, uint32(v>>32))
	return Value{Name: name, Type: format.REGQword, Data: data}
}

// Binary returns a REG_BINARY value.
func Binary(name string, data []byte) Value {
	return Value{Name: name, Type: format.REGBinary, Data: data}
}

// Build serialises root (the hive root key) into a complete hive image.
func Build(root *Node) []byte {
	b := &builder{}
	rootOff := b.writeKey(root, 0, true)
	return b.finish(rootOff)
}

type builder struct {
	cells []byte // HBIN payload area, starting right after the HBIN header
}

// alloc reserves an allocated cell for a payload of n bytes and returns its
// offset relative to 0x1000.
func (b *builder) alloc(n int) uint32 {
	size := format.CellHeaderSize + n
	if rem := size % format.CellAlignment; rem != 0 {
		size += format.CellAlignment - rem
	}
	off := len(b.cells)
	b.cells = append(b.cells, make([]byte, size)...)
	format.PutI32(b.cells, off, int32(-size))
	return uint32(format.HBINHeaderSize + off)
}

// payload returns the writable payload of the cell at rel.
func (b *builder) payload(rel uint32) []byte {
	off := int(rel) - format.HBINHeaderSize
	size := -int(format.ReadI32(b.cells, off))
	return b.cells[off+format.CellHeaderSize : off+size]
}

func (b *builder) put(data []byte) uint32 {
	rel := b.alloc(len(data))
	copy(b.payload(rel), data)
	return rel
}

func encodeName(name string) ([]byte, bool) {
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x80 {
			enc, err := utf16le.NewEncoder().Bytes([]byte(name))
			if err != nil {
				panic(err)
			}
			return enc, false
		}
	}
	return []byte(name), true
}

func (b *builder) writeKey(n *Node, parent uint32, root bool) uint32 {
	name, compressed := encodeName(n.Name)
	self := b.alloc(format.NKFixedHeaderSize + len(name))

	valueList := uint32(format.InvalidOffset)
	if len(n.Values) > 0 {
		offs := make([]byte, len(n.Values)*format.DWORDSize)
		for i, v := range n.Values {
			format.PutU32(offs, i*format.DWORDSize, b.writeValue(v))
		}
		valueList = b.put(offs)
	}

	subkeyList := uint32(format.InvalidOffset)
	if len(n.Children) > 0 {
		children := make([]uint32, len(n.Children))
		for i, c := range n.Children {
			children[i] = b.writeKey(c, self, false)
		}
		subkeyList = b.writeIndex(n.Index, children)
	}

	nk := b.payload(self)
	copy(nk, format.NKSignature)
	var flags uint16
	if compressed {
		flags |= format.NKFlagCompressedName
	}
	if root {
		flags |= format.NKFlagRoot
	}
	format.PutU16(nk, format.NKFlagsOffset, flags)
	format.PutU32(nk, format.NKParentOffset, parent)
	format.PutU32(nk, format.NKSubkeyCountOffset, uint32(len(n.Children)))
	format.PutU32(nk, format.NKSubkeyListOffset, subkeyList)
	format.PutU32(nk, format.NKValueCountOffset, uint32(len(n.Values)))
	format.PutU32(nk, format.NKValueListOffset, valueList)
	format.PutU32(nk, format.NKSecurityOffset, format.InvalidOffset)
	format.PutU32(nk, format.NKClassNameOffset, format.InvalidOffset)
	format.PutU16(nk, format.NKNameLenOffset, uint16(len(name)))
	copy(nk[format.NKNameOffset:], name)
	return self
}

func (b *builder) writeIndex(kind IndexKind, children []uint32) uint32 {
	switch kind {
	case IndexLF:
		return b.writeHashed(format.LFSignature, children)
	case IndexLI:
		return b.writeLinear(format.LISignature, children)
	case IndexRI:
		var leaves []uint32
		for start := 0; start < len(children); start += RILeafSize {
			end := min(start+RILeafSize, len(children))
			leaves = append(leaves, b.writeLinear(format.LISignature, children[start:end]))
		}
		return b.writeLinear(format.RISignature, leaves)
	default:
		return b.writeHashed(format.LHSignature, children)
	}
}

// writeHashed writes an lf/lh list. The hash fields are left zero; readers
// that only enumerate do not consult them.
func (b *builder) writeHashed(sig []byte, offs []uint32) uint32 {
	data := make([]byte, format.IdxListOffset+len(offs)*format.LFFHEntrySize)
	copy(data, sig)
	format.PutU16(data, format.IdxCountOffset, uint16(len(offs)))
	for i, off := range offs {
		format.PutU32(data, format.IdxListOffset+i*format.LFFHEntrySize, off)
	}
	return b.put(data)
}

func (b *builder) writeLinear(sig []byte, offs []uint32) uint32 {
	data := make([]byte, format.IdxListOffset+len(offs)*format.LIEntrySize)
	copy(data, sig)
	format.PutU16(data, format.IdxCountOffset, uint16(len(offs)))
	for i, off := range offs {
		format.PutU32(data, format.IdxListOffset+i*format.LIEntrySize, off)
	}
	return b.put(data)
}

func (b *builder) writeValue(v Value) uint32 {
	name, compressed := encodeName(v.Name)
	self := b.alloc(format.VKFixedHeaderSize + len(name))

	var dataLen, dataOff uint32
	switch n := len(v.Data); {
	case n <= format.VKMaxInlineData:
		dataLen = uint32(n) | format.VKSmallDataMask
		inline := make([]byte, format.DWORDSize)
		copy(inline, v.Data)
		dataOff = format.ReadU32(inline, 0)
	case n > format.DBChunkSize:
		dataLen = uint32(n)
		dataOff = b.writeBigData(v.Data)
	default:
		dataLen = uint32(n)
		dataOff = b.put(v.Data)
	}

	vk := b.payload(self)
	copy(vk, format.VKSignature)
	format.PutU16(vk, format.VKNameLenOffset, uint16(len(name)))
	format.PutU32(vk, format.VKDataLenOffset, dataLen)
	format.PutU32(vk, format.VKDataOffOffset, dataOff)
	format.PutU32(vk, format.VKTypeOffset, v.Type)
	if compressed && len(name) > 0 {
		format.PutU16(vk, format.VKFlagsOffset, format.VKFlagNameCompressed)
	}
	copy(vk[format.VKNameOffset:], name)
	return self
}

func (b *builder) writeBigData(data []byte) uint32 {
	var segs []uint32
	for start := 0; start < len(data); start += format.DBChunkSize {
		end := min(start+format.DBChunkSize, len(data))
		segs = append(segs, b.put(data[start:end]))
	}
	list := make([]byte, len(segs)*format.DWORDSize)
	for i, s := range segs {
		format.PutU32(list, i*format.DWORDSize, s)
	}
	listOff := b.put(list)

	header := make([]byte, format.DBHeaderSize)
	copy(header, format.DBSignature)
	format.PutU16(header, format.DBCountOffset, uint16(len(segs)))
	format.PutU32(header, format.DBListOffset, listOff)
	return b.put(header)
}

// finish lays out base block + one HBIN holding every cell. The remainder of
// the HBIN is a single free cell.
func (b *builder) finish(rootOff uint32) []byte {
	used := format.HBINHeaderSize + len(b.cells)
	hbinSize := (used + format.HBINAlignment - 1) / format.HBINAlignment * format.HBINAlignment

	out := make([]byte, format.HeaderSize+hbinSize)
	copy(out, format.REGFSignature)
	format.PutU32(out, format.REGFPrimarySeqOffset, 1)
	format.PutU32(out, format.REGFSecondarySeqOffset, 1)
	format.PutU32(out, format.REGFMajorVersionOffset, 1)
	format.PutU32(out, format.REGFMinorVersionOffset, 5)
	format.PutU32(out, format.REGFFormatOffset, 1)
	format.PutU32(out, format.REGFRootCellOffset, rootOff)
	format.PutU32(out, format.REGFDataSizeOffset, uint32(hbinSize))
	format.PutU32(out, format.REGFClusterOffset, 1)
	format.PutU32(out, format.REGFCheckSumOffset, format.Checksum(out[:format.HeaderSize]))

	hbin := out[format.HeaderSize:]
	copy(hbin, format.HBINSignature)
	format.PutU32(hbin, format.HBINFileOffsetField, 0)
	format.PutU32(hbin, format.HBINSizeOffset, uint32(hbinSize))
	copy(hbin[format.HBINHeaderSize:], b.cells)
	if free := hbinSize - used; free > 0 {
		format.PutI32(hbin, used, int32(free))
	}
	return out
}
