package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize of 4 concurrent renders keeps multi-file invocations
	// fast without interleaving more file writes than a laptop disk likes.
	// Rendering is cheap, so there is little to gain from higher values.
	DefaultBatchSize = 4

	// DefaultRunLabel is the history label used when none is given.
	// Saving without a label is common during exploratory work; a fixed
	// fallback keeps those runs comparable with each other.
	DefaultRunLabel = "default"

	// AppName is the application name used for XDG directory paths.
	AppName = "prospectscan"

	// StdinInput is the input path that selects standard input.
	StdinInput = "-"
)

// Report format names accepted in configuration files.
const (
	// FormatText is the fixed-layout text report (default).
	FormatText = "text"
	// FormatJSON is the machine-readable JSON report.
	FormatJSON = "json"
	// FormatMarkdown is the GitHub Flavored Markdown report.
	FormatMarkdown = "markdown"
)

// Config holds all configuration options for prospectscan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., RenderConfig, HistoryConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Inputs is the list of discovery document paths to render.
	// The special value "-" reads a single document from stdin.
	Inputs []string

	// JSONReport enables JSON report output instead of the fixed text layout.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the fixed
	// text layout. When true, outputs GitHub Flavored Markdown with tables,
	// alerts, and pie charts. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// SummaryOnly renders only the summary section of the report,
	// skipping the per-company blocks.
	SummaryOnly bool

	// OutputFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	OutputFile string

	// OutputDir is the directory for per-input report files.
	// Used when rendering multiple inputs; each input produces one file
	// named after it. Mutually exclusive with OutputFile.
	OutputDir string

	// TeeOutput writes the report to stdout in addition to the configured
	// file output. Requires OutputFile or OutputDir.
	TeeOutput bool

	// SaveRuns persists each successfully rendered run to the history
	// database for later comparison.
	SaveRuns bool

	// RunLabel groups saved runs in the history database.
	// Runs of the same discovery target should share a label so the
	// compare command can line them up.
	RunLabel string

	// HistoryDir is the directory holding the run history database.
	// Defaults to the XDG data directory (~/.local/share/prospectscan on Linux).
	HistoryDir string

	// BatchSize is the number of concurrent renders when processing
	// multiple inputs.
	BatchSize int

	// KeepDays is the retention window for saved runs in days.
	// After a successful save, runs older than this are pruned from the
	// history database. Zero keeps everything.
	KeepDays int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .prospectscan.yaml in the current
	// directory and then in the XDG config directory.
	ConfigFilePath string

	// Defaults holds configuration file contents loaded at startup.
	// Populated by LoadConfigFile; nil when no file was found.
	Defaults *File

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (batch size, history
// location). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BatchSize:  DefaultBatchSize,
		RunLabel:   DefaultRunLabel,
		HistoryDir: XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for prospectscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/prospectscan
// On macOS: ~/Library/Application Support/prospectscan
// On Windows: %LOCALAPPDATA%\prospectscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for prospectscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/prospectscan
// On macOS: ~/Library/Application Support/prospectscan
// On Windows: %APPDATA%\prospectscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any rendering begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one document to render
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	// Stdin cannot be mixed with file inputs; there is only one stdin
	if len(c.Inputs) > 1 {
		for _, input := range c.Inputs {
			if input == StdinInput {
				return ErrStdinWithMultipleInputs
			}
		}
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// OutputFile and OutputDir are mutually exclusive
	if c.OutputFile != "" && c.OutputDir != "" {
		return ErrConflictingOutputs
	}

	// A single output file cannot hold reports for several inputs
	if c.OutputFile != "" && len(c.Inputs) > 1 {
		return ErrOutputWithMultipleInputs
	}

	// Tee only makes sense when a file output is configured
	if c.TeeOutput && c.OutputFile == "" && c.OutputDir == "" {
		return ErrTeeWithoutOutput
	}

	// BatchSize must be positive; zero would mean no rendering
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// Saved runs need a label to be retrievable
	if c.SaveRuns && c.RunLabel == "" {
		return ErrSaveWithoutLabel
	}

	// A negative retention window has no meaning
	if c.KeepDays < 0 {
		return ErrInvalidKeepDays
	}

	return nil
}
