// Package bench turns benchmark result lines into records and groups them
// by payload size.
package bench

import "fmt"

// Record is one parsed benchmark result.
type Record struct {
	Variant   string `json:"variant"`
	ByteCount uint64 `json:"byte_count"`
	Gas       uint64 `json:"gas"`
}

// String renders r in the result line grammar accepted by ParseLine.
func (r Record) String() string {
	return fmt.Sprintf("[PASS] test_%s_%04x() (gas: %d)",
		r.Variant, r.ByteCount, r.Gas)
}
