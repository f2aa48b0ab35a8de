package array

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/vireo/errs"
)

// asciiCheckThreshold is the slice length below which a pure-ASCII element
// skips the full UTF-8 validator. ASCII is valid UTF-8 by definition, so
// short ASCII slices need no further work; longer slices go straight to the
// validator, which scans whole words at a time and is cheaper than a
// byte-wise ASCII pre-pass at that size.
const asciiCheckThreshold = 64

// CheckOffsetsMinimal verifies the minimal layout contract of an offsets
// buffer: it must be non-empty and its last entry must equal the length of
// the values buffer it indexes. It returns the logical array length,
// len(offsets)-1.
//
// It panics on violation. Call sites use it only on buffers the engine
// itself constructed, where a mismatch is an engine bug rather than bad
// input.
func CheckOffsetsMinimal(offsets []int32, valuesLen int) int {
	if len(offsets) == 0 {
		panic("array: offsets buffer must hold at least one entry")
	}

	length := len(offsets) - 1
	if last := int(offsets[length]); last != valuesLen {
		panic(fmt.Sprintf("array: last offset %d must equal values length %d", last, valuesLen))
	}

	return length
}

// CheckOffsets verifies that offsets are monotonically non-decreasing and
// that the final offset does not exceed valuesLen. It panics on violation;
// use TryCheckOffsets for untrusted input.
func CheckOffsets(offsets []int32, valuesLen int) {
	if err := TryCheckOffsets(offsets, valuesLen); err != nil {
		panic(err)
	}
}

// TryCheckOffsets verifies that offsets are monotonically non-decreasing,
// start at a non-negative value, and that the final offset does not exceed
// valuesLen.
//
// Only the final offset is bounds-checked: monotonicity together with the
// final bound implies every intermediate offset is in range. If
// monotonicity were ever relaxed for a new layout, per-offset bounds
// checking would need to return here.
//
// Returns:
//   - error: errs.ErrOffsetsNotMonotonic or errs.ErrOffsetsOutOfBounds on
//     violation, nil otherwise
func TryCheckOffsets(offsets []int32, valuesLen int) error {
	for i := 1; i < len(offsets); i++ {
		if offsets[i-1] > offsets[i] {
			return errs.ErrOffsetsNotMonotonic
		}
	}

	if len(offsets) > 0 {
		if offsets[0] < 0 {
			return errs.ErrOffsetsOutOfBounds
		}
		if int(offsets[len(offsets)-1]) > valuesLen {
			return errs.ErrOffsetsOutOfBounds
		}
	}

	return nil
}

// CheckOffsetsAndUTF8 verifies offsets as CheckOffsets does and additionally
// that every element slice of values is valid UTF-8. It panics on violation;
// use TryCheckOffsetsAndUTF8 for untrusted input.
func CheckOffsetsAndUTF8(offsets []int32, values []byte) {
	if err := TryCheckOffsetsAndUTF8(offsets, values); err != nil {
		panic(err)
	}
}

// TryCheckOffsetsAndUTF8 verifies that offsets are monotonically
// non-decreasing and in bounds for values, and that every half-open slice
// [offsets[i], offsets[i+1]) of values is valid UTF-8.
//
// When the entire values buffer is ASCII the per-slice UTF-8 validation is
// skipped: ASCII is valid UTF-8 and monotonic, bounded offsets guarantee
// every slice boundary falls inside it, so the cheaper offset-only check is
// sufficient. Otherwise each element is validated individually, with short
// all-ASCII slices skipping the full validator (see asciiCheckThreshold).
//
// Monotonicity and bounds are verified per adjacent pair before slicing, so
// the values buffer is never indexed out of range or in reverse.
//
// Returns:
//   - error: errs.ErrOffsetsNotMonotonic, errs.ErrOffsetsOutOfBounds or
//     errs.ErrInvalidUTF8 on violation, nil otherwise
func TryCheckOffsetsAndUTF8(offsets []int32, values []byte) error {
	if isASCII(values) {
		return TryCheckOffsets(offsets, len(values))
	}

	if len(offsets) > 0 && offsets[0] < 0 {
		return errs.ErrOffsetsOutOfBounds
	}

	for i := 1; i < len(offsets); i++ {
		start := int(offsets[i-1])
		end := int(offsets[i])

		if start > end {
			return errs.ErrOffsetsNotMonotonic
		}
		if end > len(values) {
			return errs.ErrOffsetsOutOfBounds
		}

		slice := values[start:end]

		// Fast path for short ASCII elements.
		if len(slice) < asciiCheckThreshold && isASCII(slice) {
			continue
		}

		if !utf8.Valid(slice) {
			return errs.ErrInvalidUTF8
		}
	}

	return nil
}

// isASCII reports whether every byte in b is below 0x80.
func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}

	return true
}
