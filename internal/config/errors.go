package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoInput is returned when no discovery document is specified.
	// This error occurs when the render command receives no positional
	// arguments.
	ErrNoInput = errors.New(`no input specified: provide a discovery document path or use "-" for stdin`)

	// ErrStdinWithMultipleInputs is returned when "-" appears alongside
	// file inputs. Stdin carries exactly one document, so it cannot take
	// part in a batch.
	ErrStdinWithMultipleInputs = errors.New("stdin input cannot be combined with other inputs")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConflictingOutputs is returned when both --output and --output-dir
	// are specified. A single report file and a per-input directory cannot
	// both be the destination.
	ErrConflictingOutputs = errors.New("conflicting outputs: --output and --output-dir cannot be used together")

	// ErrOutputWithMultipleInputs is returned when --output is combined with
	// more than one input. Concatenated reports in one file are never what
	// the caller wants; --output-dir produces one file per input instead.
	ErrOutputWithMultipleInputs = errors.New("--output accepts a single input: use --output-dir for multiple inputs")

	// ErrTeeWithoutOutput is returned when --tee is specified without a file
	// destination. Tee duplicates the report to stdout, which is already the
	// default destination.
	ErrTeeWithoutOutput = errors.New("--tee requires --output or --output-dir")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent renders, effectively
	// stopping the batch.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrSaveWithoutLabel is returned when runs should be saved but the run
	// label is empty. Unlabeled runs could never be found again by the
	// compare command.
	ErrSaveWithoutLabel = errors.New("run label required when saving runs: use --label")

	// ErrInvalidKeepDays is returned when the history retention window is
	// negative.
	ErrInvalidKeepDays = errors.New("invalid retention window: --keep-days must be zero or positive")

	// ErrInvalidFormat is returned when a configuration file names an
	// unknown report format.
	ErrInvalidFormat = errors.New("invalid report format: must be text, json, or markdown")
)
