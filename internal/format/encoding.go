package format

import "encoding/binary"

// Hive structures are little-endian throughout. The readers panic on short
// buffers like encoding/binary does; callers bounds-check before reading.

// ReadU16 reads a little-endian uint16 at off.
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a little-endian uint32 at off.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadI32 reads a little-endian int32 at off.
func ReadI32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off : off+4]))
}

// ReadU64 reads a little-endian uint64 at off.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutU16 writes a little-endian uint16 at off.
func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a little-endian uint32 at off.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutI32 writes a little-endian int32 at off.
func PutI32(b []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(v))
}

// Checksum computes the base block XOR checksum over the first 127 DWORDs,
// remapping 0xFFFFFFFF to 0xFFFFFFFE and 0 to 1.
func Checksum(header []byte) uint32 {
	var xor uint32
	for i := range REGFChecksumDwords {
		xor ^= ReadU32(header, i*DWORDSize)
	}
	switch xor {
	case 0xFFFFFFFF:
		return 0xFFFFFFFE
	case 0:
		return 1
	default:
		return xor
	}
}
