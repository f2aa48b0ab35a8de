package array

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vireo/errs"
)

func TestCheckOffsetsMinimal(t *testing.T) {
	tests := []struct {
		name      string
		offsets   []int32
		valuesLen int
		wantLen   int
	}{
		{name: "single zero offset", offsets: []int32{0}, valuesLen: 0, wantLen: 0},
		{name: "three elements", offsets: []int32{0, 2, 2, 7}, valuesLen: 7, wantLen: 3},
		{name: "leading non-zero", offsets: []int32{3, 5}, valuesLen: 5, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantLen, CheckOffsetsMinimal(tt.offsets, tt.valuesLen))
		})
	}
}

func TestCheckOffsetsMinimal_Panics(t *testing.T) {
	require.Panics(t, func() { CheckOffsetsMinimal(nil, 0) })
	require.Panics(t, func() { CheckOffsetsMinimal([]int32{0, 3}, 4) })
}

func TestTryCheckOffsets(t *testing.T) {
	tests := []struct {
		name      string
		offsets   []int32
		valuesLen int
		wantErr   error
	}{
		{name: "empty offsets", offsets: nil, valuesLen: 0, wantErr: nil},
		{name: "monotonic within bounds", offsets: []int32{0, 1, 1, 4}, valuesLen: 4, wantErr: nil},
		{name: "last below values length", offsets: []int32{0, 2}, valuesLen: 10, wantErr: nil},
		{name: "decreasing pair", offsets: []int32{0, 3, 2, 4}, valuesLen: 4, wantErr: errs.ErrOffsetsNotMonotonic},
		{name: "last exceeds values length", offsets: []int32{0, 2, 5}, valuesLen: 4, wantErr: errs.ErrOffsetsOutOfBounds},
		{name: "negative first offset", offsets: []int32{-1, 0, 2}, valuesLen: 4, wantErr: errs.ErrOffsetsOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TryCheckOffsets(tt.offsets, tt.valuesLen)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckOffsets_PanicsOnViolation(t *testing.T) {
	require.NotPanics(t, func() { CheckOffsets([]int32{0, 1, 2}, 2) })
	require.Panics(t, func() { CheckOffsets([]int32{2, 1}, 2) })
}

// On a pure-ASCII values buffer the UTF-8 form must agree with the plain
// offsets check in both directions.
func TestTryCheckOffsetsAndUTF8_ASCIIEquivalence(t *testing.T) {
	values := []byte("hello world")

	cases := [][]int32{
		{0, 5, 6, 11},
		{0, 11},
		{0, 3, 2, 11}, // decreasing
		{0, 5, 20},    // out of bounds
		{-2, 5, 11},   // negative
	}

	for _, offsets := range cases {
		plain := TryCheckOffsets(offsets, len(values))
		utf := TryCheckOffsetsAndUTF8(offsets, values)
		if plain == nil {
			assert.NoError(t, utf, "offsets %v", offsets)
		} else {
			assert.ErrorIs(t, utf, plain, "offsets %v", offsets)
		}
	}
}

func TestTryCheckOffsetsAndUTF8(t *testing.T) {
	valid := []byte("héllo wörld") // non-ASCII, valid UTF-8

	tests := []struct {
		name    string
		offsets []int32
		values  []byte
		wantErr error
	}{
		{name: "valid multi-byte slices", offsets: []int32{0, 6, int32(len(valid))}, values: valid, wantErr: nil},
		{name: "empty elements", offsets: []int32{0, 0, 0}, values: []byte("\xc3"), wantErr: nil},
		{
			name:    "invalid sequence at declared pair",
			offsets: []int32{0, 1},
			values:  []byte{0xc3}, // truncated two-byte sequence
			wantErr: errs.ErrInvalidUTF8,
		},
		{
			name:    "one bad slice among good ones",
			offsets: []int32{0, 6, 7, int32(len("héllo \xffok"))},
			values:  []byte("héllo \xffok"),
			wantErr: errs.ErrInvalidUTF8,
		},
		{
			name:    "monotonicity checked before slicing",
			offsets: []int32{4, 1, 6},
			values:  valid,
			wantErr: errs.ErrOffsetsNotMonotonic,
		},
		{
			name:    "bounds checked before slicing",
			offsets: []int32{0, 100},
			values:  valid,
			wantErr: errs.ErrOffsetsOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TryCheckOffsetsAndUTF8(tt.offsets, tt.values)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// A slice at or above the ASCII threshold must still validate correctly in
// a buffer that is not globally ASCII.
func TestTryCheckOffsetsAndUTF8_LongSlices(t *testing.T) {
	long := strings.Repeat("a", asciiCheckThreshold*2)
	values := []byte(long + "é")
	offsets := []int32{0, int32(len(long)), int32(len(values))}

	require.NoError(t, TryCheckOffsetsAndUTF8(offsets, values))

	// Same layout with the trailing element corrupted.
	bad := append([]byte(long), 0xff)
	require.ErrorIs(t, TryCheckOffsetsAndUTF8([]int32{0, int32(len(long)), int32(len(bad))}, bad), errs.ErrInvalidUTF8)
}

func TestCheckOffsetsAndUTF8_PanicsOnViolation(t *testing.T) {
	require.NotPanics(t, func() { CheckOffsetsAndUTF8([]int32{0, 3}, []byte("foo")) })
	require.Panics(t, func() { CheckOffsetsAndUTF8([]int32{0, 1}, []byte{0xff}) })
}
