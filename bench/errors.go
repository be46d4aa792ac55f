package bench

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is against the typed errors below.
var (
	ErrMalformedInput  = errors.New("malformed input")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrMissingVariant  = errors.New("missing variant")
	ErrDivisionByZero  = errors.New("division by zero")
)

// MalformedInputError reports a line that does not match the result grammar.
type MalformedInputError struct {
	LineNo int // 1-based, 0 when unknown
	Line   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("invalid result %q", e.Line)
	if e.LineNo > 0 {
		msg = fmt.Sprintf("line %d: %s", e.LineNo, msg)
	}

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// DuplicateRecordError reports two conflicting gas values for the same
// (byte count, variant) pair.
type DuplicateRecordError struct {
	Variant   string
	ByteCount uint64
	Existing  uint64
	Incoming  uint64
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("duplicate record for %s at 0x%04x: gas %d != %d",
		e.Variant, e.ByteCount, e.Existing, e.Incoming)
}

func (e *DuplicateRecordError) Is(target error) bool {
	return target == ErrDuplicateRecord
}

// MissingVariantError reports a variant required by the report that has no
// record for a byte count.
type MissingVariantError struct {
	Variant   string
	ByteCount uint64

	// Present lists the variants that do have a result at ByteCount.
	Present []string
}

func (e *MissingVariantError) Error() string {
	msg := fmt.Sprintf("no result for %s at 0x%04x (%d bytes)",
		e.Variant, e.ByteCount, e.ByteCount)

	if len(e.Present) == 0 {
		return msg + "; no results at this size"
	}

	return msg + "; have " + strings.Join(e.Present, ", ")
}

func (e *MissingVariantError) Is(target error) bool {
	return target == ErrMissingVariant
}

// ZeroSizeError reports a gas-per-byte computation over a zero byte count.
type ZeroSizeError struct {
	Variant string
}

func (e *ZeroSizeError) Error() string {
	return fmt.Sprintf("gas per byte for %s: zero byte count", e.Variant)
}

func (e *ZeroSizeError) Is(target error) bool {
	return target == ErrDivisionByZero
}
