package report

import (
	"slices"

	"github.com/weiihann/gasreport/bench"
	"github.com/weiihann/gasreport/config"
)

// Cell is one computed gas value.
type Cell struct {
	Column     string  `json:"column"`
	Variant    string  `json:"variant"`
	Estimated  bool    `json:"estimated,omitempty"`
	Gas        int64   `json:"gas"`
	GasPerByte float64 `json:"gas_per_byte"`
	Text       string  `json:"text"`
}

// Row is one rendered report row.
type Row struct {
	ByteCount uint64 `json:"byte_count"`
	Size      string `json:"size"`
	Cells     []Cell `json:"cells"`
}

// Strings returns the row's display cells, size label first.
func (r Row) Strings() []string {
	out := make([]string, 0, len(r.Cells)+1)
	out = append(out, r.Size)

	for _, c := range r.Cells {
		out = append(out, c.Text)
	}

	return out
}

// BuildRows computes one row per byte count, in ascending order. Every
// configured column must have a result at every byte count.
func BuildRows(table *bench.Table, cfg config.Report) ([]Row, error) {
	m, err := NewMetrics(cfg)
	if err != nil {
		return nil, err
	}

	sizes := rowSizes(table, cfg.Sizes)
	rows := make([]Row, 0, len(sizes))

	for _, size := range sizes {
		row, err := buildRow(table, cfg.Columns, m, size)
		if err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func buildRow(
	table *bench.Table,
	columns []config.Column,
	m Metrics,
	size uint64,
) (Row, error) {
	row := Row{
		ByteCount: size,
		Size:      m.SizeLabel(size),
		Cells:     make([]Cell, 0, len(columns)),
	}

	for _, col := range columns {
		measured, err := table.Gas(size, col.Variant)
		if err != nil {
			return Row{}, err
		}

		gas := int64(measured)
		if col.Estimated {
			gas = m.Estimate(measured, size)
		}

		perByte, err := GasPerByte(col.Variant, gas, size)
		if err != nil {
			return Row{}, err
		}

		row.Cells = append(row.Cells, Cell{
			Column:     col.Header,
			Variant:    col.Variant,
			Estimated:  col.Estimated,
			Gas:        gas,
			GasPerByte: perByte,
			Text:       FormatGas(gas, perByte),
		})
	}

	return row, nil
}

// rowSizes merges the table's byte counts with the expected sizes.
func rowSizes(table *bench.Table, expected []uint64) []uint64 {
	sizes := table.Sizes()
	for _, size := range expected {
		if !slices.Contains(sizes, size) {
			sizes = append(sizes, size)
		}
	}

	slices.Sort(sizes)

	return sizes
}
