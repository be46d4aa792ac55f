// Package report computes and renders gas comparison tables from benchmark
// result lines.
package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/weiihann/gasreport/bench"
	"github.com/weiihann/gasreport/config"
)

// ErrNoResults is returned when the input holds no selected result lines.
var ErrNoResults = errors.New("no results to report")

// Format selects an output rendering.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatAligned  Format = "aligned"
	FormatJSON     Format = "json"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatAligned, FormatJSON}
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}

	return "", fmt.Errorf("unknown format %q", name)
}

// Report is a fully computed comparison table.
type Report struct {
	Name    string   `json:"name,omitempty"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Build parses, groups and computes a report from raw benchmark output.
// Any malformed, conflicting or missing result fails the whole report.
func Build(in io.Reader, cfg config.Report, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sel, err := cfg.Filter.Selector()
	if err != nil {
		return nil, err
	}

	parser := &bench.Parser{
		Select:  sel,
		Aliases: cfg.Aliases,
		Logger:  logger,
	}

	records, err := parser.ParseAll(in)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if len(records) == 0 && len(cfg.Sizes) == 0 {
		return nil, ErrNoResults
	}

	table, err := bench.Aggregate(records)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	logger.Debug("results grouped",
		slog.Int("records", len(records)),
		slog.Int("sizes", table.Len()),
	)

	rows, err := BuildRows(table, cfg)
	if err != nil {
		return nil, fmt.Errorf("compute rows: %w", err)
	}

	logger.Info("report computed",
		slog.String("report", cfg.Name),
		slog.Int("records", len(records)),
		slog.Int("rows", len(rows)),
		slog.Int("columns", len(cfg.Columns)),
	)

	return &Report{
		Name:    cfg.Name,
		Headers: cfg.Headers(),
		Rows:    rows,
	}, nil
}

// Cells returns every row as display strings.
func (r *Report) Cells() [][]string {
	cells := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		cells[i] = row.Strings()
	}

	return cells
}

// Write renders r to w in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatMarkdown, "":
		return RenderMarkdown(w, r.Headers, r.Cells())
	case FormatAligned:
		return RenderAligned(w, r.Headers, r.Cells())
	case FormatJSON:
		return RenderJSON(w, r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Generate writes a markdown comparison table for the results read from in.
func Generate(w io.Writer, in io.Reader, cfg config.Report) error {
	r, err := Build(in, cfg, nil)
	if err != nil {
		return err
	}

	return r.Write(w, FormatMarkdown)
}

// GenerateJSON writes the computed report for in as JSON to w.
func GenerateJSON(w io.Writer, in io.Reader, cfg config.Report) error {
	r, err := Build(in, cfg, nil)
	if err != nil {
		return err
	}

	return r.Write(w, FormatJSON)
}
