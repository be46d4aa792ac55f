package report

import (
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/weiihann/gasreport/bench"
	"github.com/weiihann/gasreport/config"
)

var printer = message.NewPrinter(language.English)

// Metrics derives the displayed values of a report row. Build one with
// NewMetrics; the zero value is not usable.
type Metrics struct {
	wordSize uint64
	maxSize  uint64

	// gas an estimated column saves per storage slot
	perSlot uint64
}

// NewMetrics returns the Metrics described by cfg. The word size must be
// positive.
func NewMetrics(cfg config.Report) (Metrics, error) {
	if cfg.WordSize == 0 {
		return Metrics{}, errors.New("word size must be positive")
	}

	return Metrics{
		wordSize: cfg.WordSize,
		maxSize:  cfg.MaxSize,
		perSlot:  cfg.Estimate.PerSlot(),
	}, nil
}

// SizeLabel renders a byte count as "N words" when it is word aligned and
// "N bytes" otherwise. The maximum payload size is always shown in bytes
// with a "(maximum)" suffix.
func (m Metrics) SizeLabel(byteCount uint64) string {
	if m.maxSize != 0 && byteCount == m.maxSize {
		return printer.Sprintf("%d byte%s (maximum)", byteCount, plural(byteCount))
	}

	if byteCount%m.wordSize != 0 {
		return printer.Sprintf("%d byte%s", byteCount, plural(byteCount))
	}

	words := byteCount / m.wordSize

	return printer.Sprintf("%d word%s", words, plural(words))
}

// Slots returns the number of storage slots a payload of byteCount bytes
// touches: one per full word plus one for the length-prefixed tail. A tail
// one byte short of a full word spills into one more slot.
func (m Metrics) Slots(byteCount uint64) uint64 {
	slots := byteCount/m.wordSize + 1
	if byteCount%m.wordSize == m.wordSize-1 {
		slots++
	}

	return slots
}

// Estimate returns gas less the per-slot saving for byteCount. The result
// may be negative for small payloads.
func (m Metrics) Estimate(gas, byteCount uint64) int64 {
	return int64(gas) - int64(m.Slots(byteCount)*m.perSlot)
}

// GasPerByte divides gas by byteCount, failing on an empty payload.
func GasPerByte(variant string, gas int64, byteCount uint64) (float64, error) {
	if byteCount == 0 {
		return 0, &bench.ZeroSizeError{Variant: variant}
	}

	return float64(gas) / float64(byteCount), nil
}

// FormatGas renders gas as "42.1k (1,315.2 g/b)".
func FormatGas(gas int64, perByte float64) string {
	return printer.Sprintf("%.1fk (%.1f g/b)", float64(gas)/1000, perByte)
}

func plural(n uint64) string {
	if n == 1 {
		return ""
	}

	return "s"
}
