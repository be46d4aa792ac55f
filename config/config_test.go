package config

import (
	"bytes"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	wantHeaders := []string{
		"bytes",
		"SSTORE2",
		"SSTORE2 + CREATE3",
		"SSTORE3 (est. w/ EIP1153)",
		"SSTORE3",
	}
	if got := cfg.Headers(); !slices.Equal(got, wantHeaders) {
		t.Errorf("headers = %q, want %q", got, wantHeaders)
	}
	if got := cfg.Estimate.PerSlot(); got != 2220 {
		t.Errorf("per slot = %d, want 2220", got)
	}
	if cfg.MaxSize != 0x5fff {
		t.Errorf("max size = %#x, want 0x5fff", cfg.MaxSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	input := `
name = "sstore3-layouts"
size_header = "Size"
max_size = 0x5fff

[estimate]
reset_cost = 100

[filter]
prefix = "[PASS]"

[aliases]
SSTORE3_S = "SSTORE3 (short)"

[[columns]]
header = "SSTORE3 (short)"
variant = "SSTORE3 (short)"

[[columns]]
header = "SSTORE3 (short, est.)"
variant = "SSTORE3 (short)"
estimated = true
`

	cfg, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "sstore3-layouts" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.SizeHeader != "Size" {
		t.Errorf("size header = %q, want Size", cfg.SizeHeader)
	}
	if cfg.WordSize != 32 {
		t.Errorf("word size = %d, unset field should keep default 32", cfg.WordSize)
	}
	if cfg.Estimate.ColdAccessCost != 2100 || cfg.Estimate.ResetCost != 100 {
		t.Errorf("estimate = %+v, want {2100 100}", cfg.Estimate)
	}
	if cfg.Filter.Prefix != "[PASS]" {
		t.Errorf("prefix = %q, want [PASS]", cfg.Filter.Prefix)
	}
	if !slices.Equal(cfg.Filter.Skip, Default().Filter.Skip) {
		t.Errorf("skip = %q, want defaults", cfg.Filter.Skip)
	}

	wantAliases := map[string]string{"SSTORE3_S": "SSTORE3 (short)"}
	if !reflect.DeepEqual(cfg.Aliases, wantAliases) {
		t.Errorf("aliases = %v, want %v", cfg.Aliases, wantAliases)
	}

	wantColumns := []Column{
		{Header: "SSTORE3 (short)", Variant: "SSTORE3 (short)"},
		{Header: "SSTORE3 (short, est.)", Variant: "SSTORE3 (short)", Estimated: true},
	}
	if !slices.Equal(cfg.Columns, wantColumns) {
		t.Errorf("columns = %+v, want %+v", cfg.Columns, wantColumns)
	}
}

func TestLoadEmptyUsesDefault(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("config = %+v, want default %+v", cfg, Default())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("word_sise = 32\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}

	if !strings.Contains(err.Error(), "word_sise") {
		t.Errorf("error %q does not name the key", err)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "zero word size",
			input: "word_size = 0\n",
			want:  "word_size",
		},
		{
			name:  "bad skip pattern",
			input: "[filter]\nskip = [\"(\"]\n",
			want:  "skip pattern",
		},
		{
			name: "duplicate header",
			input: `
[[columns]]
header = "A"
variant = "A"

[[columns]]
header = "A"
variant = "B"
`,
			want: "duplicate header",
		},
		{
			name:  "header clashes with size column",
			input: "[[columns]]\nheader = \"bytes\"\nvariant = \"A\"\n",
			want:  "duplicate header",
		},
		{
			name:  "empty variant",
			input: "[[columns]]\nheader = \"A\"\n",
			want:  "empty variant",
		},
		{
			name:  "not toml",
			input: "columns = [",
			want:  "decode config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Default()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	cfg, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("round trip = %+v, want %+v", cfg, Default())
	}
}

func TestDefaultSelector(t *testing.T) {
	sel, err := Default().Filter.Selector()
	if err != nil {
		t.Fatalf("Selector failed: %v", err)
	}

	tests := []struct {
		line string
		want bool
	}{
		{"[PASS] test_SSTORE2_0020() (gas: 42085)", true},
		{"[PASS] test_SSTORE2_0020()", true},
		{"[FAIL] test_SSTORE2_0040() (gas: 1)", true},
		{"[FAIL. Reason: revert] test_SSTORE2_0040() (gas: 1)", true},
		{"[PASS] test_read_SSTORE2_0020() (gas: 2600)", false},
		{"  [PASS] test_SSTORE2_read_0020() (gas: 2600)", false},
		{"[⠊] Compiling...", false},
		{"[⠒] Solc 0.8.24 finished in 1.2s", false},
		{"Ran 36 tests for test/SSTORE.t.sol:SSTORETest", false},
		{"Suite result: ok. 36 passed; 0 failed; 0 skipped", false},
	}

	for _, tt := range tests {
		if got := sel(tt.line); got != tt.want {
			t.Errorf("select(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestPrefixSelector(t *testing.T) {
	sel, err := Filter{Prefix: "[PASS]"}.Selector()
	if err != nil {
		t.Fatalf("Selector failed: %v", err)
	}

	if !sel("  [PASS] test_SSTORE2_0020() (gas: 42085)") {
		t.Error("indented result line should be selected")
	}
	if sel("[FAIL] test_SSTORE2_0020() (gas: 42085)") {
		t.Error("line without prefix should be dropped")
	}
}
