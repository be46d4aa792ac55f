package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
)

// RenderMarkdown writes a pipe-delimited table: a header line, a separator
// of len(header)+2 dashes per column, then one line per row in the given
// order.
func RenderMarkdown(w io.Writer, headers []string, rows [][]string) error {
	var sb strings.Builder

	writeLine(&sb, headers)

	sep := make([]string, len(headers))
	for i, h := range headers {
		sep[i] = strings.Repeat("-", utf8.RuneCountInString(h)+2)
	}

	writeLine(&sb, sep)

	for _, row := range rows {
		writeLine(&sb, row)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

func writeLine(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	sb.WriteString(strings.Join(cells, "|"))
	sb.WriteString("|\n")
}

// RenderAligned writes a space-padded table for terminals. Gas columns are
// right aligned.
func RenderAligned(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	align := make([]int, len(headers))
	for i := range align {
		align[i] = tablewriter.ALIGN_RIGHT
	}

	if len(align) > 0 {
		align[0] = tablewriter.ALIGN_LEFT
	}

	table.SetColumnAlignment(align)
	table.AppendBulk(rows)
	table.Render()

	return nil
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}
