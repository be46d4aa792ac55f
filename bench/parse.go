package bench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const maxLineSize = 1 << 20

var resultLine = regexp.MustCompile(
	`^\[PASS\] test_(\w+)_([0-9a-f]{4})\(\) \(gas: (\d+)\)$`,
)

// ParseLine parses a single result line of the form
//
//	[PASS] test_<Variant>_<hhhh>() (gas: <digits>)
//
// where hhhh is the payload size as four lowercase hex digits.
func ParseLine(line string) (Record, error) {
	trimmed := strings.TrimSpace(line)

	m := resultLine.FindStringSubmatch(trimmed)
	if m == nil {
		return Record{}, &MalformedInputError{Line: line}
	}

	byteCount, err := strconv.ParseUint(m[2], 16, 64)
	if err != nil {
		return Record{}, &MalformedInputError{Line: line, Reason: err.Error()}
	}

	gas, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return Record{}, &MalformedInputError{Line: line, Reason: err.Error()}
	}

	if gas == 0 {
		return Record{}, &MalformedInputError{Line: line, Reason: "zero gas"}
	}

	// Gas is signed once estimates are applied.
	if gas > math.MaxInt64 {
		return Record{}, &MalformedInputError{Line: line, Reason: "gas overflows int64"}
	}

	return Record{Variant: m[1], ByteCount: byteCount, Gas: gas}, nil
}

// Parser reads a full benchmark log and parses every selected line.
type Parser struct {
	// Select reports whether a non-blank line is a result line. A nil
	// Select keeps every line.
	Select func(line string) bool

	// Aliases renames parsed variants. Unmapped names pass through.
	Aliases map[string]string

	Logger *slog.Logger
}

// Alias returns the display name for a parsed variant token.
func (p *Parser) Alias(variant string) string {
	if name, ok := p.Aliases[variant]; ok {
		return name
	}

	return variant
}

// ParseAll parses all selected lines read from r. The first malformed line
// aborts parsing; no partial result is returned.
func (p *Parser) ParseAll(r io.Reader) ([]Record, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		records []Record
		lineNo  int
		skipped int
	)

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		if p.Select != nil && !p.Select(line) {
			skipped++

			logger.Debug("skipping line",
				slog.Int("line", lineNo),
				slog.String("text", line),
			)

			continue
		}

		rec, err := ParseLine(line)
		if err != nil {
			var mErr *MalformedInputError
			if errors.As(err, &mErr) {
				mErr.LineNo = lineNo
			}

			return nil, err
		}

		rec.Variant = p.Alias(rec.Variant)
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	logger.Debug("parsed results",
		slog.Int("records", len(records)),
		slog.Int("skipped", skipped),
	)

	return records, nil
}
