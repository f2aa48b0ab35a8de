// Package array implements vireo's immutable columnar arrays and the
// mutable builders that produce them.
//
// An array is a typed, nullable, fixed-length sequence. Every array carries
// a DataType, an optional validity bitmap (absent means no nulls), and
// type-specific storage:
//
//   - primitive arrays: a flat value slice
//   - variable-length arrays (binary, utf8): an offsets buffer of length
//     len+1 plus a flat values buffer
//   - list arrays: an offsets buffer plus a child array
//   - dictionary arrays: an int32 keys array plus a values dictionary array
//
// Variable-length layouts are validated at construction by the checkers in
// specification.go: offsets must be monotonically non-decreasing, the final
// offset bounds the values buffer, and utf8 arrays additionally require
// every element slice to be valid UTF-8. Constructors come in pairs: the
// panicking form is for buffers the engine built itself, where a violation
// is an engine bug; the Try form returns an error and is for externally
// supplied bytes.
//
// The set of array variants is closed. Code that needs a concrete array
// from an Array handle narrows it with the As* accessors, which return an
// errs.ErrWrongVariant error instead of panicking on a layout mismatch.
package array
