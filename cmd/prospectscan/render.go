package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/prospectscan/prospectscan/internal/batch"
	"github.com/prospectscan/prospectscan/internal/config"
	"github.com/prospectscan/prospectscan/internal/history"
	"github.com/prospectscan/prospectscan/internal/log"
	"github.com/prospectscan/prospectscan/internal/model"
	"github.com/prospectscan/prospectscan/internal/report"
	"github.com/prospectscan/prospectscan/internal/schema"
	"github.com/spf13/cobra"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [discovery-document...]",
		Short: "Render discovery documents as prospect reports",
		Long: `Render reads discovery documents produced by the enrichment API and
renders them as prospect reports.

Every document is an envelope with a success flag. A failed envelope
prints its error message and exits non-zero without touching the payload;
a successful one is validated against the result schema and rendered in
the requested format.

With no arguments the document is read from stdin. Multiple file
arguments render one after another; combined with --output-dir they
render concurrently, one report file per input.

Examples:
  # Render a document from stdin
  prospectscan render < discovery.json

  # Render a document file as Markdown
  prospectscan render --markdown discovery.json

  # Render several documents into a reports directory
  prospectscan render --output-dir reports q1.json q2.json q3.json

  # Save the run for later comparison
  prospectscan render --save --label uae-banking discovery.json

Configuration file (.prospectscan.yaml) example:
  defaults:
    format: text
    save: true
  labels:
    uae-banking:
      format: markdown
      outputDir: reports/uae`,
		Args: cobra.ArbitraryArgs,
		RunE: runRenderCmd,
	}

	// Report format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().BoolP("summary", "s", false,
		"Render only the summary section")

	// Output destination flags
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("output-dir", "",
		"Write one report file per input into this directory")
	cmd.Flags().Bool("tee", false,
		"Write the report to stdout in addition to the file output")

	// Run history flags
	cmd.Flags().BoolP("save", "S", false,
		"Save the rendered run to the history database")
	cmd.Flags().StringP("label", "l", config.DefaultRunLabel,
		"History label for saved runs")
	cmd.Flags().Int("keep-days", 0,
		"Prune saved runs older than this many days after saving (0 keeps everything)")

	// Batch rendering flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent renders for multiple inputs")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .prospectscan.yaml in current directory)")

	return cmd
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential redaction
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runRender(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.SummaryOnly, err = cmd.Flags().GetBool("summary")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, err
	}

	cfg.TeeOutput, err = cmd.Flags().GetBool("tee")
	if err != nil {
		return nil, err
	}

	cfg.SaveRuns, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.RunLabel, err = cmd.Flags().GetString("label")
	if err != nil {
		return nil, err
	}

	cfg.KeepDays, err = cmd.Flags().GetInt("keep-days")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Load render defaults from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Defaults, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		applyConfigFile(cmd, cfg)
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Positional arguments are the documents to render; default to stdin
	cfg.Inputs = args
	if len(cfg.Inputs) == 0 {
		cfg.Inputs = []string{config.StdinInput}
	}

	return cfg, nil
}

// applyConfigFile merges config file defaults into cfg.
// Explicit command line flags always win over file values.
func applyConfigFile(cmd *cobra.Command, cfg *config.Config) {
	if cfg.Defaults == nil {
		return
	}

	// The label may come from the file; it also selects the profile below
	if !cmd.Flags().Changed("label") && cfg.Defaults.Defaults.Label != "" {
		cfg.RunLabel = cfg.Defaults.Defaults.Label
	}

	defaults := cfg.Defaults.LabelConfig(cfg.RunLabel)

	if !cmd.Flags().Changed("json") && !cmd.Flags().Changed("markdown") {
		switch defaults.Format {
		case config.FormatJSON:
			cfg.JSONReport = true
		case config.FormatMarkdown:
			cfg.MarkdownReport = true
		}
	}
	if !cmd.Flags().Changed("save") && defaults.Save {
		cfg.SaveRuns = true
	}
	if !cmd.Flags().Changed("batch") && defaults.Batch > 0 {
		cfg.BatchSize = defaults.Batch
	}
	if !cmd.Flags().Changed("output-dir") && defaults.OutputDir != "" {
		cfg.OutputDir = defaults.OutputDir
	}
	if defaults.HistoryDir != "" {
		cfg.HistoryDir = defaults.HistoryDir
	}
	if defaults.Verbose {
		cfg.Verbose = true
	}
}

// runRender renders all configured inputs.
func runRender(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting render",
		"inputs", cfg.Inputs,
		"batchSize", cfg.BatchSize,
		"saveRuns", cfg.SaveRuns,
	)

	// Open the history database when runs should be saved
	var db *history.RunDB
	if cfg.SaveRuns {
		var err error
		db, err = history.Open(cfg.HistoryDir, history.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("history database opened", "path", db.Path())
	}

	var err error
	switch {
	case len(cfg.Inputs) > 1 && cfg.OutputDir != "" && cfg.BatchSize > 1:
		err = runBatchRender(ctx, cfg, db, logger)
	case len(cfg.Inputs) > 1:
		err = runSequentialRender(ctx, cfg, db, logger)
	default:
		err = renderOne(ctx, cfg, db, cfg.Inputs[0], logger)
	}
	if err != nil {
		return err
	}

	return pruneHistory(ctx, db, cfg, logger)
}

// renderOne reads, decodes, renders, and saves a single input.
func renderOne(ctx context.Context, cfg *config.Config, db *history.RunDB, input string, logger *slog.Logger) error {
	raw, err := readInput(input)
	if err != nil {
		return err
	}

	result, err := decodeDiscovery(raw)
	if err != nil {
		return reportDecodeFailure(err)
	}

	if err := outputReport(cfg, destinationPath(cfg, input), result); err != nil {
		return err
	}

	return saveRun(ctx, db, cfg, raw, result, logger)
}

// runSequentialRender renders multiple inputs one at a time in argument
// order. A failing input does not stop the remaining ones.
func runSequentialRender(ctx context.Context, cfg *config.Config, db *history.RunDB, logger *slog.Logger) error {
	failed := 0
	for _, input := range cfg.Inputs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := renderOne(ctx, cfg, db, input, logger); err != nil {
			logger.Error("render failed", "input", input, "error", err)
			failed++

			// Failed envelopes already printed their ERROR line; everything
			// else gets a diagnostic on stderr
			var discoveryErr *model.DiscoveryError
			if !errors.As(err, &discoveryErr) {
				fmt.Fprintf(os.Stderr, "Render error for %s: %v\n", input, err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to render", failed, len(cfg.Inputs))
	}
	return nil
}

// runBatchRender renders multiple inputs concurrently into the output
// directory using the batch processor.
func runBatchRender(ctx context.Context, cfg *config.Config, db *history.RunDB, logger *slog.Logger) error {
	fmt.Printf("Rendering %d documents (concurrency: %d)...\n\n", len(cfg.Inputs), cfg.BatchSize)

	startTime := time.Now()

	processor := batch.NewProcessor(
		func(ctx context.Context, input string) ([]byte, error) {
			raw, err := readInput(input)
			if err != nil {
				return nil, err
			}
			result, err := decodeDiscovery(raw)
			if err != nil {
				return nil, err
			}
			output, err := renderToBuffer(cfg, result)
			if err != nil {
				return nil, err
			}
			// The run store serializes concurrent writers internally
			if err := saveRun(ctx, db, cfg, raw, result, logger); err != nil {
				return output, err
			}
			return output, nil
		},
		batch.WithConcurrency(cfg.BatchSize),
		batch.WithLogger(logger),
	)

	// Process with callback for streaming progress. File writes stay in the
	// callback so progress lines and reports land in finish order.
	var mu sync.Mutex
	failed := 0
	err := processor.ProcessWithCallback(ctx, cfg.Inputs, func(outcome batch.Outcome, index int) {
		mu.Lock()
		defer mu.Unlock()

		if outcome.Err != nil {
			failed++
			fmt.Printf("[%d/%d] Render failed: %s (%v)\n",
				index+1, len(cfg.Inputs), outcome.Input, outcome.Err)
			return
		}

		path := destinationPath(cfg, outcome.Input)
		if err := writeReportFile(path, outcome.Output); err != nil {
			failed++
			logger.Error("report write failed", "input", outcome.Input, "error", err)
			fmt.Printf("[%d/%d] Render failed: %s (%v)\n",
				index+1, len(cfg.Inputs), outcome.Input, err)
			return
		}

		if cfg.TeeOutput {
			_, _ = os.Stdout.Write(outcome.Output)
		}

		fmt.Printf("[%d/%d] Rendered %s -> %s (%s)\n",
			index+1, len(cfg.Inputs), outcome.Input, path, outcome.Duration.Round(time.Millisecond))
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nRendered %d of %d documents in %s\n",
		len(cfg.Inputs)-failed, len(cfg.Inputs), elapsed.Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to render", failed, len(cfg.Inputs))
	}
	return nil
}

// readInput reads a discovery document from a file or stdin.
func readInput(input string) ([]byte, error) {
	if input == config.StdinInput {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(input) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return raw, nil
}

// decodeDiscovery runs a raw document through the envelope gate, schema
// validation, and payload decoding.
//
// A failed envelope returns a *model.DiscoveryError and the payload is
// never touched. The other error cases are malformed JSON, a missing
// payload, and schema violations.
func decodeDiscovery(raw []byte) (*model.Result, error) {
	env, err := model.ParseEnvelope(raw)
	if err != nil {
		return nil, err
	}

	if env.Failed() {
		return nil, &model.DiscoveryError{Message: env.ErrorMessage()}
	}

	if !env.HasData() {
		return nil, errors.New("discovery document has no data payload")
	}

	if err := schema.ValidateResult(env.Data); err != nil {
		return nil, fmt.Errorf("invalid discovery payload: %w", err)
	}

	result, err := model.DecodeResult(env.Data)
	if err != nil {
		return nil, err
	}

	result.EnsureSummary()
	return result, nil
}

// reportDecodeFailure prints the error line for a failed envelope and passes
// every other decode error through untouched.
//
// A failed envelope is its own report: exactly one ERROR line on stdout and
// nothing anywhere else, no matter which format or output flags are set.
func reportDecodeFailure(err error) error {
	var discoveryErr *model.DiscoveryError
	if errors.As(err, &discoveryErr) {
		fmt.Printf("ERROR: %s\n", discoveryErr.Message)
	}
	return err
}

// outputReport renders the result in the requested format to the
// destination path, or stdout when the path is empty. With --tee the report
// goes to both.
func outputReport(cfg *config.Config, path string, result *model.Result) error {
	// Determine output destination
	var output io.Writer = os.Stdout
	if path != "" {
		f, err := createReportFile(path)
		if err != nil {
			return err
		}
		defer f.Close()
		output = f
	}

	writer := newReportWriter(output, cfg)
	if path != "" && cfg.TeeOutput {
		writer = report.NewMultiWriter(writer, newReportWriter(os.Stdout, cfg))
	}

	if cfg.SummaryOnly {
		_, err := writer.WriteSummary(result.EnsureSummary())
		return err
	}
	_, err := writer.Write(result)
	return err
}

// renderToBuffer renders the result to memory in the configured format.
func renderToBuffer(cfg *config.Config, result *model.Result) ([]byte, error) {
	var buf bytes.Buffer
	writer := newReportWriter(&buf, cfg)

	var err error
	if cfg.SummaryOnly {
		_, err = writer.WriteSummary(result.EnsureSummary())
	} else {
		_, err = writer.Write(result)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newReportWriter picks the report writer for the configured format.
func newReportWriter(output io.Writer, cfg *config.Config) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewTextWriter(output)
	}
}

// destinationPath resolves the report destination for one input.
// An empty return means stdout.
func destinationPath(cfg *config.Config, input string) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	if cfg.OutputDir != "" {
		return filepath.Join(cfg.OutputDir, reportFileName(input, cfg))
	}
	return ""
}

// reportFileName derives a report file name from the input path and the
// configured format. Stdin gets a fixed stem.
func reportFileName(input string, cfg *config.Config) string {
	stem := "report"
	if input != config.StdinInput {
		base := filepath.Base(input)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}

	switch {
	case cfg.JSONReport:
		return stem + ".json"
	case cfg.MarkdownReport:
		return stem + ".md"
	default:
		return stem + ".txt"
	}
}

// createReportFile opens the report destination, creating parent
// directories as needed.
// Reports get 0600 permissions; discovery documents carry prospect data
// that should only be readable by the owner.
func createReportFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// writeReportFile writes rendered report bytes to a file, creating parent
// directories as needed.
func writeReportFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// saveRun persists the rendered run to the history database if enabled.
// If db is nil, this function is a no-op.
func saveRun(ctx context.Context, db *history.RunDB, cfg *config.Config, raw []byte, result *model.Result, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	run := history.NewRun(cfg.RunLabel, raw, result)
	id, err := db.SaveRun(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to history", "label", cfg.RunLabel, "id", id)
	return nil
}

// pruneHistory removes saved runs older than the retention window.
// If db is nil or no window is configured, this function is a no-op.
func pruneHistory(ctx context.Context, db *history.RunDB, cfg *config.Config, logger *slog.Logger) error {
	if db == nil || cfg.KeepDays <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -cfg.KeepDays)
	deleted, err := db.PruneBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	if deleted > 0 {
		logger.Info("pruned old runs", "deleted", deleted, "keepDays", cfg.KeepDays)
	}
	return nil
}
