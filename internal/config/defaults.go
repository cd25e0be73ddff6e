package config

// RenderDefaults holds render settings that a configuration file can preset.
// Every field is optional; zero values leave the built-in default in place.
type RenderDefaults struct {
	// Format selects the report format: "text", "json", or "markdown".
	Format string `yaml:"format,omitempty"`

	// Label is the history label for saved runs.
	Label string `yaml:"label,omitempty"`

	// Save persists rendered runs to the history database.
	// Only a true value overrides the command line.
	Save bool `yaml:"save,omitempty"`

	// Batch overrides the number of concurrent renders.
	Batch int `yaml:"batch,omitempty"`

	// OutputDir is the directory for per-input report files.
	OutputDir string `yaml:"outputDir,omitempty"`

	// HistoryDir overrides the run history database location.
	HistoryDir string `yaml:"historyDir,omitempty"`

	// Verbose enables detailed log output.
	// Only a true value overrides the command line.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Validate checks that the defaults name a known report format.
func (d RenderDefaults) Validate() error {
	switch d.Format {
	case "", FormatText, FormatJSON, FormatMarkdown:
		return nil
	default:
		return ErrInvalidFormat
	}
}

// File represents the structure of the .prospectscan.yaml configuration file.
type File struct {
	// Defaults contains render settings applied to every invocation unless
	// overridden on the command line.
	Defaults RenderDefaults `yaml:"defaults,omitempty"`

	// Labels maps history labels to render settings applied when that label
	// is selected with --label. Label settings override Defaults.
	Labels map[string]RenderDefaults `yaml:"labels,omitempty"`
}

// LabelConfig returns the render defaults for a specific history label.
// It merges the label-specific settings over the file-wide defaults.
func (f *File) LabelConfig(label string) RenderDefaults {
	// Start with defaults
	result := f.Defaults

	// Override with label-specific configuration if present
	if labelConfig, ok := f.Labels[label]; ok {
		if labelConfig.Format != "" {
			result.Format = labelConfig.Format
		}
		if labelConfig.Label != "" {
			result.Label = labelConfig.Label
		}
		if labelConfig.Save {
			result.Save = true
		}
		if labelConfig.Batch != 0 {
			result.Batch = labelConfig.Batch
		}
		if labelConfig.OutputDir != "" {
			result.OutputDir = labelConfig.OutputDir
		}
		if labelConfig.HistoryDir != "" {
			result.HistoryDir = labelConfig.HistoryDir
		}
		if labelConfig.Verbose {
			result.Verbose = true
		}
	}

	return result
}
