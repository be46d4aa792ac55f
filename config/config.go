// Package config describes the shape of a gas comparison report: which
// lines to read, how to name variants, and which columns to show.
package config

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Report is the full configuration for one report.
type Report struct {
	Name string `toml:"name"`

	// SizeHeader labels the first column.
	SizeHeader string `toml:"size_header"`

	// WordSize is the unit used for "N words" size labels.
	WordSize uint64 `toml:"word_size"`

	// MaxSize is the platform's maximum payload size. It is labelled
	// "(maximum)". Zero disables the annotation.
	MaxSize uint64 `toml:"max_size"`

	Estimate Estimate          `toml:"estimate"`
	Filter   Filter            `toml:"filter"`
	Aliases  map[string]string `toml:"aliases"`
	Columns  []Column          `toml:"columns"`

	// Sizes lists byte counts that must appear in the report. Results
	// for other sizes are reported too.
	Sizes []uint64 `toml:"sizes,omitempty"`
}

// Estimate holds the per-slot gas saved under the alternate opcode
// schedule used by estimated columns.
type Estimate struct {
	ColdAccessCost uint64 `toml:"cold_access_cost"`
	ResetCost      uint64 `toml:"reset_cost"`
}

// PerSlot returns the gas subtracted for every storage slot.
func (e Estimate) PerSlot() uint64 {
	return e.ColdAccessCost + e.ResetCost
}

// Filter selects which input lines are benchmark results.
type Filter struct {
	// Prefix, when set, keeps only lines starting with it.
	Prefix string `toml:"prefix"`

	// Skip drops lines matching any of these regular expressions.
	Skip []string `toml:"skip"`
}

// Column is one value column of the report.
type Column struct {
	Header  string `toml:"header"`
	Variant string `toml:"variant"`

	// Estimated derives the column from Variant's gas instead of
	// showing it directly.
	Estimated bool `toml:"estimated,omitempty"`
}

// Default returns the SSTORE2 / SSTORE3 storage comparison report.
func Default() Report {
	return Report{
		Name:       "sstore",
		SizeHeader: "bytes",
		WordSize:   32,
		MaxSize:    0x6000 - 1,
		Estimate: Estimate{
			ColdAccessCost: 2100,
			ResetCost:      120,
		},
		// Every status-marked line is parsed, so a failed benchmark
		// aborts the report. Read timings and build progress spinners
		// such as "[⠊] Compiling..." are not results.
		Filter: Filter{
			Prefix: "[",
			Skip: []string{
				`^\[PASS\] test_\w*[Rr]ead\w*\(\)`,
				`^\[[^\]A-Za-z]*\]`,
			},
		},
		Aliases: map[string]string{
			"SSTORE25": "SSTORE2 + CREATE3",
		},
		Columns: []Column{
			{Header: "SSTORE2", Variant: "SSTORE2"},
			{Header: "SSTORE2 + CREATE3", Variant: "SSTORE2 + CREATE3"},
			{Header: "SSTORE3 (est. w/ EIP1153)", Variant: "SSTORE3", Estimated: true},
			{Header: "SSTORE3", Variant: "SSTORE3"},
		},
	}
}

// Load decodes a TOML report configuration from r. Fields absent from the
// file keep their Default values; unknown keys are an error.
func Load(r io.Reader) (Report, error) {
	cfg := Default()
	// Lists and maps from the file replace the defaults wholesale.
	cfg.Aliases = nil
	cfg.Columns = nil
	cfg.Filter.Skip = nil

	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Report{}, fmt.Errorf("decode config: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return Report{}, fmt.Errorf("unknown config keys: %s",
			strings.Join(keys, ", "))
	}

	if !md.IsDefined("columns") {
		cfg.Columns = Default().Columns
	}

	if !md.IsDefined("aliases") && !md.IsDefined("columns") {
		cfg.Aliases = Default().Aliases
	}

	if !md.IsDefined("filter", "skip") {
		cfg.Filter.Skip = Default().Filter.Skip
	}

	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Report) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return nil
}

// Validate checks that cfg can produce a report.
func (r Report) Validate() error {
	var errs []error

	if r.WordSize == 0 {
		errs = append(errs, errors.New("word_size must be positive"))
	}

	if len(r.Columns) == 0 {
		errs = append(errs, errors.New("at least one column is required"))
	}

	seen := make(map[string]bool, len(r.Columns)+1)
	seen[r.SizeHeader] = true

	if r.SizeHeader == "" {
		errs = append(errs, errors.New("size_header must not be empty"))
	}

	for i, col := range r.Columns {
		if col.Header == "" {
			errs = append(errs, fmt.Errorf("column %d: empty header", i))
		} else if seen[col.Header] {
			errs = append(errs, fmt.Errorf("column %d: duplicate header %q", i, col.Header))
		}

		seen[col.Header] = true

		if col.Variant == "" {
			errs = append(errs, fmt.Errorf("column %d: empty variant", i))
		}
	}

	if _, err := r.Filter.compile(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Headers returns the full header row, size column first.
func (r Report) Headers() []string {
	headers := make([]string, 0, len(r.Columns)+1)
	headers = append(headers, r.SizeHeader)

	for _, col := range r.Columns {
		headers = append(headers, col.Header)
	}

	return headers
}

// Selector returns the line predicate described by the filter.
func (f Filter) Selector() (func(line string) bool, error) {
	skip, err := f.compile()
	if err != nil {
		return nil, err
	}

	return func(line string) bool {
		line = strings.TrimSpace(line)

		if f.Prefix != "" && !strings.HasPrefix(line, f.Prefix) {
			return false
		}

		for _, re := range skip {
			if re.MatchString(line) {
				return false
			}
		}

		return true
	}, nil
}

func (f Filter) compile() ([]*regexp.Regexp, error) {
	skip := make([]*regexp.Regexp, 0, len(f.Skip))

	for _, pattern := range f.Skip {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("filter skip pattern %q: %w", pattern, err)
		}

		skip = append(skip, re)
	}

	return skip, nil
}
