package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	headers := []string{"Size", "A", "Variant B"}
	rows := [][]string{
		{"1 word", "1.0k (31.2 g/b)", "2.0k (62.5 g/b)"},
		{"30 bytes", "x", "y"},
	}

	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, headers, rows); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	want := "|Size|A|Variant B|\n" +
		"|------|---|-----------|\n" +
		"|1 word|1.0k (31.2 g/b)|2.0k (62.5 g/b)|\n" +
		"|30 bytes|x|y|\n"

	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderMarkdownNoRows(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, []string{"bytes"}, nil); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	if got := buf.String(); got != "|bytes|\n|-------|\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkdownSeparatorCountsRunes(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, []string{"größe"}, nil); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if lines[1] != "|-------|" {
		t.Errorf("separator = %q, want 7 dashes", lines[1])
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

var errWriteFailed = errors.New("write failed")

func TestRenderMarkdownWriteError(t *testing.T) {
	err := RenderMarkdown(failWriter{}, []string{"bytes"}, nil)
	if !errors.Is(err, errWriteFailed) {
		t.Errorf("err = %v, want %v", err, errWriteFailed)
	}
}

func TestRenderAligned(t *testing.T) {
	var buf bytes.Buffer
	err := RenderAligned(&buf, []string{"bytes", "SSTORE2"}, [][]string{
		{"1 word", "42.1k (1,315.2 g/b)"},
	})
	if err != nil {
		t.Fatalf("RenderAligned failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "bytes") || !strings.Contains(output, "SSTORE2") {
		t.Errorf("headers missing or reformatted:\n%s", output)
	}
	if !strings.Contains(output, "42.1k (1,315.2 g/b)") {
		t.Errorf("cell missing:\n%s", output)
	}
}
