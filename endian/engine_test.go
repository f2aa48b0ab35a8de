package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.NotNil(t, order)
	assert.Contains(t, []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}, order)
	assert.Equal(t, order == binary.LittleEndian, IsNativeLittleEndian())
}

func TestCompareNativeEndian(t *testing.T) {
	little := CompareNativeEndian(GetLittleEndianEngine())
	big := CompareNativeEndian(GetBigEndianEngine())
	assert.NotEqual(t, little, big, "exactly one engine matches the host order")
}

func TestEngineRoundTrip(t *testing.T) {
	le := GetLittleEndianEngine()
	be := GetBigEndianEngine()

	buf := le.AppendUint32(nil, 0xdeadbeef)
	assert.Equal(t, []byte{0xef, 0xbe, 0xad, 0xde}, buf)
	assert.Equal(t, uint32(0xdeadbeef), le.Uint32(buf))

	buf = be.AppendUint32(nil, 0xdeadbeef)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, buf)
	assert.Equal(t, uint32(0xdeadbeef), be.Uint32(buf))

	buf = le.AppendUint64(nil, 0x0102030405060708)
	assert.Equal(t, uint64(0x0102030405060708), le.Uint64(buf))
}
