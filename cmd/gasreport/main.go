// Package main provides the CLI entry point for gasreport, which turns
// storage benchmark gas results into a comparison table.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/weiihann/gasreport/config"
	"github.com/weiihann/gasreport/report"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCmd(logger, level)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "gasreport",
		Short: "Render gas comparison tables from storage benchmark results",
		Long: `Gasreport reads "[PASS] test_<Variant>_<hhhh>() (gas: <n>)" lines
produced by a storage benchmark suite and renders one row per payload size
with gas and gas-per-byte for every configured variant.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				level.Set(slog.LevelDebug)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	root.AddCommand(newRenderCmd(logger))
	root.AddCommand(newConfigCmd())

	return root
}

func newRenderCmd(logger *slog.Logger) *cobra.Command {
	var (
		configPath string
		format     string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "render [results-file]",
		Short: "Render a comparison table from benchmark results",
		Long: `Parse benchmark result lines from a file (or stdin when no file or
"-" is given) and write the comparison table. Any malformed, conflicting or
missing result aborts the report.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}

			return runRender(cmd.Context(), logger, renderConfig{
				configPath: configPath,
				format:     format,
				inputPath:  input,
				outputPath: outputPath,
				stdin:      cmd.InOrStdin(),
				stdout:     cmd.OutOrStdout(),
			})
		},
	}

	names := make([]string, 0, len(report.Formats()))
	for _, f := range report.Formats() {
		names = append(names, string(f))
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "",
		"Path to a TOML report config (default: built-in SSTORE report)")
	flags.StringVarP(&format, "format", "f", string(report.FormatMarkdown),
		"Output format: "+strings.Join(names, ", "))
	flags.StringVarP(&outputPath, "output", "o", "",
		"Write the table to this file instead of stdout")

	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the built-in report config as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return config.Write(cmd.OutOrStdout(), config.Default())
		},
	}
}

type renderConfig struct {
	configPath string
	format     string
	inputPath  string
	outputPath string
	stdin      io.Reader
	stdout     io.Writer
}

func runRender(
	ctx context.Context,
	logger *slog.Logger,
	cfg renderConfig,
) error {
	format, err := report.ParseFormat(cfg.format)
	if err != nil {
		return err
	}

	reportCfg, err := loadConfig(cfg.configPath)
	if err != nil {
		return err
	}

	input, err := readInput(cfg.inputPath, cfg.stdin)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "rendering report",
		slog.String("report", reportCfg.Name),
		slog.String("input", cfg.inputPath),
		slog.String("format", string(format)),
		slog.Int("input_bytes", len(input)),
	)

	r, err := report.Build(bytes.NewReader(input), reportCfg, logger)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	// Render fully before touching the output so a failure leaves no
	// partial table behind.
	var out bytes.Buffer
	if err := r.Write(&out, format); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if cfg.outputPath == "" {
		_, err = cfg.stdout.Write(out.Bytes())
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		return nil
	}

	if err := os.WriteFile(cfg.outputPath, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logger.InfoContext(ctx, "report written",
		slog.String("path", cfg.outputPath),
		slog.Int("rows", len(r.Rows)),
	)

	return nil
}

func loadConfig(path string) (config.Report, error) {
	if path == "" {
		return config.Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return config.Report{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := config.Load(f)
	if err != nil {
		return config.Report{}, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	return data, nil
}
