// Package format holds the on-disk layout of Windows Registry hive files:
// signatures, fixed offsets and the little-endian readers used to decode them.
// It has no knowledge of keys or values as a tree; the hive package builds that
// view on top of these constants.
package format

var (
	// REGFSignature is the four-byte signature at the start of every hive file.
	REGFSignature = []byte{'r', 'e', 'g', 'f'}

	// HBINSignature is the four-byte signature at the beginning of each hive bin.
	HBINSignature = []byte{'h', 'b', 'i', 'n'}

	// NKSignature identifies an NK (Node Key) cell payload.
	NKSignature = []byte{'n', 'k'}

	// VKSignature identifies a VK (Value Key) cell payload.
	VKSignature = []byte{'v', 'k'}

	// LFSignature, LHSignature, and LISignature identify subkey list variants.
	// LF/LH include hashed names, while LI is a linear list without hashes.
	LFSignature = []byte{'l', 'f'}
	LHSignature = []byte{'l', 'h'}
	LISignature = []byte{'l', 'i'}

	// RISignature identifies an RI (indirect) subkey list. RI lists contain
	// offsets to further LF/LH/LI lists.
	RISignature = []byte{'r', 'i'}

	// DBSignature identifies a Big Data (DB) record for large registry values.
	DBSignature = []byte{'d', 'b'}
)

const (
	// HeaderSize is the size of the REGF base block in bytes.
	HeaderSize = 4096

	// HiveDataBase is the absolute file offset of the first HBIN. Every cell
	// offset (HCELL_INDEX) in the hive is relative to it.
	HiveDataBase = 0x1000

	// HBINHeaderSize is the size of the HBIN header in bytes.
	HBINHeaderSize = 0x20

	// HBINAlignment is the required alignment of hive bins.
	HBINAlignment = 0x1000

	// CellHeaderSize is the int32 size field preceding every cell.
	CellHeaderSize = 4

	// CellAlignment is the required alignment of cells within HBINs.
	CellAlignment = 8

	// SignatureSize is the length of two-character cell signatures.
	SignatureSize = 2

	// InvalidOffset marks an absent HCELL_INDEX.
	InvalidOffset = 0xFFFFFFFF

	// DWORDSize is the size of a uint32 on disk.
	DWORDSize = 4

	// QWORDSize is the size of a uint64 on disk.
	QWORDSize = 8
)

// REGF base block offsets.
const (
	REGFSignatureOffset    = 0x000
	REGFSignatureSize      = 4
	REGFPrimarySeqOffset   = 0x004
	REGFSecondarySeqOffset = 0x008
	REGFTimeStampOffset    = 0x00C
	REGFMajorVersionOffset = 0x014
	REGFMinorVersionOffset = 0x018
	REGFTypeOffset         = 0x01C
	REGFFormatOffset       = 0x020
	REGFRootCellOffset     = 0x024 // HCELL_INDEX relative to 0x1000
	REGFDataSizeOffset     = 0x028 // sum of HBIN sizes
	REGFClusterOffset      = 0x02C
	REGFCheckSumOffset     = 0x1FC // XOR of the first 508 bytes

	REGFChecksumDwords = 127
)

// HBIN header offsets.
const (
	HBINFileOffsetField = 0x04
	HBINSizeOffset      = 0x08
)

// NK (key node) payload offsets.
const (
	NKFlagsOffset       = 0x02
	NKLastWriteOffset   = 0x04
	NKParentOffset      = 0x10
	NKSubkeyCountOffset = 0x14
	NKSubkeyListOffset  = 0x1C
	NKValueCountOffset  = 0x24
	NKValueListOffset   = 0x28
	NKSecurityOffset    = 0x2C
	NKClassNameOffset   = 0x30
	NKNameLenOffset     = 0x48
	NKClassLenOffset    = 0x4A
	NKNameOffset        = 0x4C

	// NKFixedHeaderSize is the payload size before the inline name.
	NKFixedHeaderSize = NKNameOffset

	// NKFlagCompressedName marks a key name stored as Windows-1252 bytes
	// instead of UTF-16LE.
	NKFlagCompressedName = 0x0020

	// NKFlagRoot marks the hive root key.
	NKFlagRoot = 0x0004
)

// VK (value) payload offsets.
const (
	VKNameLenOffset = 0x02
	VKDataLenOffset = 0x04 // high bit set: data stored inline in the offset field
	VKDataOffOffset = 0x08
	VKTypeOffset    = 0x0C
	VKFlagsOffset   = 0x10
	VKNameOffset    = 0x14

	VKFixedHeaderSize = VKNameOffset

	// VKFlagNameCompressed marks a value name stored as Windows-1252 bytes.
	VKFlagNameCompressed = 0x0001

	// VKSmallDataMask is the inline-data bit of the data length field.
	VKSmallDataMask = 0x8000_0000

	// VKMaxInlineData is the largest data length that can be stored inline.
	VKMaxInlineData = 4
)

// Subkey index (lf/lh/li/ri) offsets.
const (
	IdxSignatureOffset = 0x00
	IdxCountOffset     = 0x02
	IdxListOffset      = 0x04
	IdxMinHeader       = IdxListOffset

	// LIEntrySize is the size of an li/ri entry: one uint32 cell index.
	LIEntrySize = 4

	// LFFHEntrySize is the size of an lf/lh entry: cell index plus hash.
	LFFHEntrySize = 8
)

// DB (big data) offsets.
const (
	DBCountOffset = 0x02
	DBListOffset  = 0x04
	DBHeaderSize  = 0x0C

	// DBChunkSize is the maximum payload carried by one big-data segment.
	DBChunkSize = 16344

	// DBMinBlockCount is the smallest valid segment count.
	DBMinBlockCount = 2
)

// Registry value types as stored in VK.Type.
const (
	REGNone     uint32 = 0
	REGSz       uint32 = 1
	REGExpandSz uint32 = 2
	REGBinary   uint32 = 3
	REGDword    uint32 = 4
	REGDwordBE  uint32 = 5
	REGLink     uint32 = 6
	REGMultiSz  uint32 = 7
	REGQword    uint32 = 11
)
