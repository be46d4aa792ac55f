package bench

import "slices"

// Table groups gas results by byte count, then by variant.
type Table struct {
	entries map[uint64]map[string]uint64
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{entries: make(map[uint64]map[string]uint64)}
}

// Aggregate builds a Table from records. Arrival order does not matter.
func Aggregate(records []Record) (*Table, error) {
	t := NewTable()

	for _, rec := range records {
		if err := t.Insert(rec); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Insert adds rec to the table. Re-inserting an identical record is a
// no-op; a conflicting gas value for the same size and variant fails.
func (t *Table) Insert(rec Record) error {
	row, ok := t.entries[rec.ByteCount]
	if !ok {
		row = make(map[string]uint64)
		t.entries[rec.ByteCount] = row
	}

	if existing, ok := row[rec.Variant]; ok && existing != rec.Gas {
		return &DuplicateRecordError{
			Variant:   rec.Variant,
			ByteCount: rec.ByteCount,
			Existing:  existing,
			Incoming:  rec.Gas,
		}
	}

	row[rec.Variant] = rec.Gas

	return nil
}

// Gas returns the gas recorded for variant at byteCount.
func (t *Table) Gas(byteCount uint64, variant string) (uint64, error) {
	gas, ok := t.entries[byteCount][variant]
	if !ok {
		return 0, &MissingVariantError{
			Variant:   variant,
			ByteCount: byteCount,
			Present:   t.Variants(byteCount),
		}
	}

	return gas, nil
}

// Sizes returns every byte count in ascending order.
func (t *Table) Sizes() []uint64 {
	sizes := make([]uint64, 0, len(t.entries))
	for size := range t.entries {
		sizes = append(sizes, size)
	}

	slices.Sort(sizes)

	return sizes
}

// Variants returns the variants recorded at byteCount, sorted by name.
func (t *Table) Variants(byteCount uint64) []string {
	row := t.entries[byteCount]

	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Len returns the number of distinct byte counts.
func (t *Table) Len() int {
	return len(t.entries)
}
