package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPut(t *testing.T) {
	b := make([]byte, 16)
	PutU16(b, 0, 0xBEEF)
	PutU32(b, 2, 0xDEADBEEF)
	PutI32(b, 6, -8)

	assert.Equal(t, []byte{0xEF, 0xBE}, b[:2])
	assert.Equal(t, uint16(0xBEEF), ReadU16(b, 0))
	assert.Equal(t, uint32(0xDEADBEEF), ReadU32(b, 2))
	assert.Equal(t, int32(-8), ReadI32(b, 6))
	assert.Equal(t, uint64(0xDEADBEEF)<<16|0xBEEF, ReadU64(b, 0)&0xFFFF_FFFF_FFFF)
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h []byte)
		want  uint32
	}{
		{"all zero maps to one", func([]byte) {}, 1},
		{"single dword", func(h []byte) { PutU32(h, 0, 0x1234) }, 0x1234},
		{"xor cancels", func(h []byte) { PutU32(h, 0, 0x55); PutU32(h, 4, 0x55) }, 1},
		{"all ones remapped", func(h []byte) { PutU32(h, 0, 0xFFFFFFFF) }, 0xFFFFFFFE},
		{"checksum field ignored", func(h []byte) { PutU32(h, REGFCheckSumOffset, 0x99) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := make([]byte, HeaderSize)
			tt.setup(h)
			require.Equal(t, tt.want, Checksum(h))
		})
	}
}
