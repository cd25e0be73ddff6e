package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prospectscan/prospectscan/internal/config"
	"github.com/prospectscan/prospectscan/internal/history"
	"github.com/prospectscan/prospectscan/internal/model"
	"github.com/spf13/cobra"
)

// Constants for trend direction.
const (
	trendImproved = "improved"
	trendWorsened = "worsened"
	trendStable   = "stable"
)

// NewCompareCmd creates the compare command.
// This command compares saved discovery runs from the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [label]",
		Short: "Compare saved discovery runs",
		Long: `Compare displays differences between the current and previous saved runs
of a history label.

This command retrieves saved runs from the history database and shows:
- Companies that are new since the previous run
- Companies that dropped out of the results
- Score and signal changes for companies present in both runs

The comparison requires at least two saved runs for the label. Use
'prospectscan render --save' to save runs while rendering.

Examples:
  # Compare the latest two runs for a label
  prospectscan compare uae-banking

  # List all saved runs for a label
  prospectscan compare --list uae-banking

  # Compare with a specific historical run by ID
  prospectscan compare --with-run-id 5 uae-banking

  # Compare against the oldest run since a date
  prospectscan compare --since "2026-01-01" uae-banking

  # Output the comparison in JSON format
  prospectscan compare --json uae-banking

  # List all labels in the history database
  prospectscan compare --list-labels`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List saved runs for the specified label")
	cmd.Flags().BoolP("list-labels", "L", false,
		"List all labels in the history database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first run after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-labels flag first (requires database but no label)
	listLabels, err := cmd.Flags().GetBool("list-labels")
	if err != nil {
		return err
	}

	// Runs saved without an explicit label land under the default label,
	// so a bare 'prospectscan compare' lines those up
	label := config.DefaultRunLabel
	if len(args) > 0 {
		label = args[0]
	}

	// Open the history database
	db, err := history.Open(historyDir(), history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Handle --list-labels flag
	if listLabels {
		return listRunLabels(ctx, db)
	}

	// Handle --list flag
	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listRunHistory(ctx, db, label)
	}

	// Get output format flags
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	// Get comparison target flags
	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	// Perform comparison
	return runComparison(ctx, db, label, withRunID, sinceDate, jsonOutput, markdownOutput)
}

// historyDir resolves the run history directory. A historyDir set in the
// configuration file wins; otherwise the XDG data directory is used, the
// same default the render command saves into.
func historyDir() string {
	if path := config.FindConfigFile(""); path != "" {
		if file, err := config.LoadConfigFile(path); err == nil && file.Defaults.HistoryDir != "" {
			return file.Defaults.HistoryDir
		}
	}
	return config.XDGDataDir()
}

// listRunLabels lists all labels that have saved runs in the database.
func listRunLabels(ctx context.Context, db *history.RunDB) error {
	labels, err := db.ListLabels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list labels: %w", err)
	}

	if len(labels) == 0 {
		fmt.Println("No saved runs found in the history database.")
		fmt.Println("\nUse 'prospectscan render --save' to save a run.")
		return nil
	}

	fmt.Printf("Labels (%d):\n\n", len(labels))
	for _, label := range labels {
		fmt.Printf("  • %s\n", label)
	}
	fmt.Println("\nUse 'prospectscan compare --list <label>' to see run history for a label.")

	return nil
}

// listRunHistory lists all saved runs for a specific label.
func listRunHistory(ctx context.Context, db *history.RunDB, label string) error {
	runs, err := db.GetRunHistoryWithMetadata(ctx, label)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No run history found for %s\n", label)
		fmt.Println("\nUse 'prospectscan render --save' to save a run under this label.")
		return nil
	}

	fmt.Printf("Run history for %s (%d runs):\n\n", label, len(runs))
	fmt.Printf("  %-6s  %-20s  %-10s  %-8s  %s\n", "ID", "Date", "Companies", "Signals", "Top Score")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range runs {
		fmt.Printf("  %-6d  %-20s  %-10d  %-8d  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.CompanyCount,
			meta.DetectedSignals,
			formatScore(meta.TopScore),
		)
	}

	fmt.Println("\nUse 'prospectscan compare <label>' to compare the latest two runs.")
	fmt.Println("Use 'prospectscan compare --with-run-id <id> <label>' to compare with a specific run.")

	return nil
}

// runComparison performs the actual comparison between saved runs.
func runComparison(ctx context.Context, db *history.RunDB, label string, withRunID int64, sinceDate string, jsonOutput, markdownOutput bool) error {
	// Get the run history
	runs, err := db.GetRunHistory(ctx, label)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		return fmt.Errorf("no run history found for %s", label)
	}

	if len(runs) < 2 && withRunID == 0 && sinceDate == "" {
		return fmt.Errorf("at least 2 runs are required for comparison (%s has %d)", label, len(runs))
	}

	// Determine which runs to compare
	var currentRun, previousRun *history.Run

	// Latest run is always the current one
	currentRun = runs[0]

	if withRunID > 0 {
		// Find the run with the specified ID
		previousRun, err = db.GetRunByID(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to get run with ID %d: %w", withRunID, err)
		}
		if previousRun == nil {
			return fmt.Errorf("run with ID %d not found", withRunID)
		}
		// Validate that the run ID belongs to the same label
		if previousRun.Label != label {
			return fmt.Errorf("run ID %d belongs to %s, not %s", withRunID, previousRun.Label, label)
		}
	} else if sinceDate != "" {
		// Parse the date and find the first (oldest) run at or after the specified date
		parsedDate, err := time.Parse("2006-01-02", sinceDate)
		if err != nil {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
		}

		// Runs are sorted by timestamp DESC (newest first), so iterate in
		// reverse to find the first (oldest) run at or after the date
		for i := len(runs) - 1; i >= 0; i-- {
			r := runs[i]
			if r.Timestamp.After(parsedDate) || r.Timestamp.Equal(parsedDate) {
				previousRun = r
				break // Stop at the first (oldest) matching run
			}
		}
		if previousRun == nil {
			return fmt.Errorf("no runs found since %s", sinceDate)
		}
		// If only one run matches and it's the current run, we can't compare
		if previousRun == currentRun {
			return fmt.Errorf("only one run found since %s; at least 2 runs are required for comparison", sinceDate)
		}
	} else {
		// Default: compare with the previous run
		previousRun = runs[1]
	}

	// Generate comparison result
	comparison := compareRuns(previousRun, currentRun)

	// Output the result
	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(comparison)
	}
	return outputComparisonText(comparison)
}

// RunComparison holds the result of comparing two saved discovery runs.
type RunComparison struct {
	// Label is the history label the compared runs belong to.
	Label string `json:"label"`

	// PreviousRun contains metadata about the previous run.
	PreviousRun RunSnapshot `json:"previous_run"`

	// CurrentRun contains metadata about the current run.
	CurrentRun RunSnapshot `json:"current_run"`

	// NewCompanies are companies that appear only in the current run.
	NewCompanies []CompanyChange `json:"new_companies,omitempty"`

	// DroppedCompanies are companies that appear only in the previous run.
	DroppedCompanies []CompanyChange `json:"dropped_companies,omitempty"`

	// ChangedCompanies are companies present in both runs whose score or
	// signal count moved.
	ChangedCompanies []CompanyChange `json:"changed_companies,omitempty"`

	// UnchangedCount is the number of companies with no changes.
	UnchangedCount int `json:"unchanged_count"`

	// Trend describes the overall movement of the prospect pipeline.
	Trend TrendChange `json:"trend"`
}

// RunSnapshot contains metadata about one run for comparison display.
type RunSnapshot struct {
	// ID is the database row ID of the run.
	ID int64 `json:"id"`

	// Timestamp is when the run was saved.
	Timestamp time.Time `json:"timestamp"`

	// CompanyCount is the number of companies in the run.
	CompanyCount int `json:"company_count"`

	// DetectedSignals is the number of signals attached to companies.
	DetectedSignals int `json:"detected_signals"`

	// TopScore is the highest prospect score in the run.
	TopScore float64 `json:"top_score"`
}

// newRunSnapshot captures the comparison-facing metadata of a stored run.
// The counters come from the run row itself; they were computed at save
// time, so building a snapshot never walks the result payload.
func newRunSnapshot(run *history.Run) RunSnapshot {
	return RunSnapshot{
		ID:              run.ID,
		Timestamp:       run.Timestamp,
		CompanyCount:    run.CompanyCount,
		DetectedSignals: run.DetectedSignals,
		TopScore:        run.TopScore,
	}
}

// CompanyChange describes one company's movement between two runs.
type CompanyChange struct {
	// Name is the company name.
	Name string `json:"name"`

	// PreviousScore is the prospect score in the previous run.
	// Zero for companies new in the current run.
	PreviousScore float64 `json:"previous_score"`

	// CurrentScore is the prospect score in the current run.
	// Zero for companies dropped from the current run.
	CurrentScore float64 `json:"current_score"`

	// ScoreDelta is the score change between the runs.
	ScoreDelta float64 `json:"score_delta"`

	// SignalDelta is the change in attached signal count.
	SignalDelta int `json:"signal_delta"`
}

// TrendChange describes the overall pipeline movement between two runs.
type TrendChange struct {
	// Direction is "improved", "worsened", or "stable".
	Direction string `json:"direction"`

	// CompanyDelta is the change in company count.
	CompanyDelta int `json:"company_delta"`

	// SignalDelta is the change in detected signal count.
	SignalDelta int `json:"signal_delta"`

	// TopScoreDelta is the change in the highest prospect score.
	TopScoreDelta float64 `json:"top_score_delta"`
}

// compareRuns compares two saved runs and generates a comparison result.
func compareRuns(previous, current *history.Run) *RunComparison {
	result := &RunComparison{
		Label:       current.Label,
		PreviousRun: newRunSnapshot(previous),
		CurrentRun:  newRunSnapshot(current),
	}

	previousCompanies := companyIndex(previous.Result)
	currentCompanies := companyIndex(current.Result)

	// Walk the current run in document order so output stays deterministic.
	// The index already collapsed duplicate names to their last occurrence.
	if current.Result != nil {
		seen := make(map[string]bool)
		for i := range current.Result.Entities {
			name := current.Result.Entities[i].Name
			if seen[name] {
				continue
			}
			seen[name] = true

			curr := currentCompanies[name]
			prev, existed := previousCompanies[name]
			if !existed {
				result.NewCompanies = append(result.NewCompanies, CompanyChange{
					Name:         name,
					CurrentScore: curr.GetScore(),
					ScoreDelta:   curr.GetScore(),
					SignalDelta:  len(curr.Signals),
				})
				continue
			}

			scoreDelta := curr.GetScore() - prev.GetScore()
			signalDelta := len(curr.Signals) - len(prev.Signals)
			if scoreDelta == 0 && signalDelta == 0 {
				result.UnchangedCount++
				continue
			}
			result.ChangedCompanies = append(result.ChangedCompanies, CompanyChange{
				Name:          name,
				PreviousScore: prev.GetScore(),
				CurrentScore:  curr.GetScore(),
				ScoreDelta:    scoreDelta,
				SignalDelta:   signalDelta,
			})
		}
	}

	// Companies in the previous run that the current run no longer has
	if previous.Result != nil {
		seen := make(map[string]bool)
		for i := range previous.Result.Entities {
			name := previous.Result.Entities[i].Name
			if seen[name] {
				continue
			}
			seen[name] = true

			if _, exists := currentCompanies[name]; exists {
				continue
			}
			prev := previousCompanies[name]
			result.DroppedCompanies = append(result.DroppedCompanies, CompanyChange{
				Name:          name,
				PreviousScore: prev.GetScore(),
				ScoreDelta:    -prev.GetScore(),
				SignalDelta:   -len(prev.Signals),
			})
		}
	}

	// Calculate overall trend
	result.Trend = calculateTrend(previous, current)

	return result
}

// companyIndex builds a name index over the companies of a run.
// Duplicate names keep the last occurrence, matching how the report
// renderer treats repeated companies.
func companyIndex(result *model.Result) map[string]*model.Entity {
	index := make(map[string]*model.Entity)
	if result == nil {
		return index
	}
	for i := range result.Entities {
		index[result.Entities[i].Name] = &result.Entities[i]
	}
	return index
}

// scoreMass sums the prospect scores across the distinct companies of a
// run. Duplicate names count once, the same way the comparison treats them.
func scoreMass(result *model.Result) float64 {
	var total float64
	for _, entity := range companyIndex(result) {
		total += entity.GetScore()
	}
	return total
}

// calculateTrend calculates the pipeline movement between two runs.
func calculateTrend(previous, current *history.Run) TrendChange {
	trend := TrendChange{
		CompanyDelta:  current.CompanyCount - previous.CompanyCount,
		SignalDelta:   current.DetectedSignals - previous.DetectedSignals,
		TopScoreDelta: current.TopScore - previous.TopScore,
	}

	// Direction follows the total score mass. Prospect scores rank
	// opportunity, so more mass means a stronger pipeline.
	previousMass := scoreMass(previous.Result)
	currentMass := scoreMass(current.Result)

	switch {
	case currentMass > previousMass:
		trend.Direction = trendImproved
	case currentMass < previousMass:
		trend.Direction = trendWorsened
	default:
		trend.Direction = trendStable
	}

	return trend
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *RunComparison) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(result *RunComparison) error {
	fmt.Printf("# Run Comparison: %s\n\n", result.Label)

	// Trend summary
	fmt.Println("## Summary")
	fmt.Printf("\n**Pipeline Trend:** %s\n\n", formatTrendDirection(result.Trend.Direction))

	// Run metadata table
	fmt.Println("| Metric | Previous | Current | Change |")
	fmt.Println("|--------|----------|---------|--------|")
	fmt.Printf("| Date | %s | %s | - |\n",
		result.PreviousRun.Timestamp.Format("2006-01-02 15:04"),
		result.CurrentRun.Timestamp.Format("2006-01-02 15:04"))
	fmt.Printf("| Companies | %d | %d | %s |\n",
		result.PreviousRun.CompanyCount,
		result.CurrentRun.CompanyCount,
		formatDelta(result.Trend.CompanyDelta))
	fmt.Printf("| Signals | %d | %d | %s |\n",
		result.PreviousRun.DetectedSignals,
		result.CurrentRun.DetectedSignals,
		formatDelta(result.Trend.SignalDelta))
	fmt.Printf("| Top Score | %s | %s | %s |\n",
		formatScore(result.PreviousRun.TopScore),
		formatScore(result.CurrentRun.TopScore),
		formatScoreDelta(result.Trend.TopScoreDelta))

	// New companies
	if len(result.NewCompanies) > 0 {
		fmt.Printf("\n## New Companies (%d)\n\n", len(result.NewCompanies))
		for _, c := range result.NewCompanies {
			fmt.Printf("- **%s** (score %s, %d signals)\n",
				c.Name, formatScore(c.CurrentScore), c.SignalDelta)
		}
	}

	// Dropped companies
	if len(result.DroppedCompanies) > 0 {
		fmt.Printf("\n## Dropped Companies (%d)\n\n", len(result.DroppedCompanies))
		for _, c := range result.DroppedCompanies {
			fmt.Printf("- ~~**%s** (score %s)~~\n", c.Name, formatScore(c.PreviousScore))
		}
	}

	// Changed companies
	if len(result.ChangedCompanies) > 0 {
		fmt.Printf("\n## Changed Companies (%d)\n\n", len(result.ChangedCompanies))
		for _, c := range result.ChangedCompanies {
			fmt.Printf("- **%s**: score %s -> %s (%s), signals %s\n",
				c.Name,
				formatScore(c.PreviousScore), formatScore(c.CurrentScore),
				formatScoreDelta(c.ScoreDelta),
				formatDelta(c.SignalDelta))
		}
	}

	// Unchanged count
	if result.UnchangedCount > 0 {
		fmt.Printf("\n---\n\n*%d companies unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *RunComparison) error {
	fmt.Printf("Run Comparison: %s\n", result.Label)
	fmt.Println(strings.Repeat("=", 60))

	// Trend summary
	fmt.Printf("\nPipeline Trend: %s\n", formatTrendDirection(result.Trend.Direction))

	// Run dates
	fmt.Printf("\nPrevious run: %s (ID %d)\n",
		result.PreviousRun.Timestamp.Format("2006-01-02 15:04:05"), result.PreviousRun.ID)
	fmt.Printf("Current run:  %s (ID %d)\n",
		result.CurrentRun.Timestamp.Format("2006-01-02 15:04:05"), result.CurrentRun.ID)

	// Summary table
	fmt.Println("\nRun Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Companies",
		result.PreviousRun.CompanyCount, result.CurrentRun.CompanyCount,
		formatDelta(result.Trend.CompanyDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Signals",
		result.PreviousRun.DetectedSignals, result.CurrentRun.DetectedSignals,
		formatDelta(result.Trend.SignalDelta))
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Top Score",
		formatScore(result.PreviousRun.TopScore), formatScore(result.CurrentRun.TopScore),
		formatScoreDelta(result.Trend.TopScoreDelta))

	// New companies
	if len(result.NewCompanies) > 0 {
		fmt.Printf("\nNew Companies (%d):\n", len(result.NewCompanies))
		for _, c := range result.NewCompanies {
			fmt.Printf("  [+] %s (score %s, %d signals)\n",
				c.Name, formatScore(c.CurrentScore), c.SignalDelta)
		}
	}

	// Dropped companies
	if len(result.DroppedCompanies) > 0 {
		fmt.Printf("\nDropped Companies (%d):\n", len(result.DroppedCompanies))
		for _, c := range result.DroppedCompanies {
			fmt.Printf("  [-] %s (score %s)\n", c.Name, formatScore(c.PreviousScore))
		}
	}

	// Changed companies
	if len(result.ChangedCompanies) > 0 {
		fmt.Printf("\nChanged Companies (%d):\n", len(result.ChangedCompanies))
		for _, c := range result.ChangedCompanies {
			fmt.Printf("  [~] %s: score %s -> %s (%s), signals %s\n",
				c.Name,
				formatScore(c.PreviousScore), formatScore(c.CurrentScore),
				formatScoreDelta(c.ScoreDelta),
				formatDelta(c.SignalDelta))
		}
	}

	// Unchanged count
	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d companies\n", result.UnchangedCount)
	}

	return nil
}

// formatTrendDirection formats the trend direction for display.
func formatTrendDirection(direction string) string {
	switch direction {
	case trendImproved:
		return "IMPROVED (pipeline strengthened)"
	case trendWorsened:
		return "WORSENED (pipeline weakened)"
	default:
		return "STABLE"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}

// formatScore formats a prospect score for display.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

// formatScoreDelta formats a score delta with sign for display.
func formatScoreDelta(delta float64) string {
	if delta > 0 {
		return "+" + strconv.FormatFloat(delta, 'f', 1, 64)
	}
	return strconv.FormatFloat(delta, 'f', 1, 64)
}
