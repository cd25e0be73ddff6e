package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prospectscan/prospectscan/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxDisplayedSignals caps how many signals are listed per company.
// The remainder is summarized in a trailer line; aggregation elsewhere
// always covers the full list.
const maxDisplayedSignals = 5

// descriptionLimit is the character budget for one signal description line.
const descriptionLimit = 100

// TextWriter outputs the human-readable prospect report.
// This format is designed for terminal display and for piping to files.
//
// Design decision: The layout is fixed and plain ASCII. Saved run
// baselines and downstream tooling diff these reports line by line, so
// section order, indentation, and blank line placement are part of the
// output contract and must not drift. Color support would interfere with
// piping and adds nothing for diffing, so there is none.
type TextWriter struct {
	baseWriter

	// printer renders headcounts with thousands separators.
	printer *message.Printer
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// Write outputs the full report: header, one block per company in
// document order, and the summary section. The summary is computed on
// the result if not already present.
func (w *TextWriter) Write(result *model.Result) (int, error) {
	summary := result.EnsureSummary()

	var sb strings.Builder
	w.writeHeader(&sb, result)
	for i := range result.Entities {
		w.writeEntity(&sb, i+1, &result.Entities[i])
	}
	sb.WriteString("\n")
	w.writeSummarySection(&sb, summary)

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs only the summary section.
func (w *TextWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder
	w.writeSummarySection(&sb, summary)
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report title and the data quality overview.
func (w *TextWriter) writeHeader(sb *strings.Builder, result *model.Result) {
	banner := strings.Repeat("=", 80)

	sb.WriteString(banner + "\n")
	sb.WriteString("DISCOVERY ENGINE STRESS TEST - Employee Banking UAE\n")
	sb.WriteString(banner + "\n")
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Sources Used: %s\n", strings.Join(result.DataQuality.SourcesUsed, ", ")))
	sb.WriteString(fmt.Sprintf("Total Companies Discovered: %d\n", result.CompanyCount()))
	// Reported count is printed verbatim, never recomputed from the
	// entity signal lists.
	sb.WriteString(fmt.Sprintf("Total Signals Detected: %d\n", result.ReportedSignalCount()))
	sb.WriteString("\n")

	sb.WriteString(banner + "\n")
	sb.WriteString("DISCOVERED COMPANIES & SIGNALS\n")
	sb.WriteString(banner + "\n")
}

// writeEntity writes one company block with profile, score breakdown,
// signals, and insights.
func (w *TextWriter) writeEntity(sb *strings.Builder, index int, entity *model.Entity) {
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("#%d %s\n", index, entity.Name))
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	sb.WriteString(fmt.Sprintf("   Industry: %s\n", entity.GetIndustry()))
	sb.WriteString(w.printer.Sprintf("   Headcount: %d employees\n", entity.GetHeadcount()))
	sb.WriteString(fmt.Sprintf("   Size: %s\n", entity.GetSize()))
	sb.WriteString(fmt.Sprintf("   City: %s\n", entity.GetCity()))
	sb.WriteString(fmt.Sprintf("   Score: %s/100\n", formatNumber(entity.ScoreNumber())))
	sb.WriteString("\n")

	if len(entity.ScoreBreakdown) > 0 {
		sb.WriteString("   Score Breakdown:\n")
		for _, factor := range entity.ScoreBreakdown {
			sb.WriteString(fmt.Sprintf("      - %s: %s\n", factor.Name, formatNumber(factor.Score)))
		}
	}

	if len(entity.Signals) > 0 {
		w.writeSignals(sb, entity.Signals)
	}

	// The insight header is printed for every company, even when no
	// rule matches.
	sb.WriteString("\n")
	sb.WriteString("   WHY THIS MATTERS FOR EMPLOYEE BANKING:\n")
	for _, insight := range entity.Insights() {
		sb.WriteString(fmt.Sprintf("   * %s\n", insight))
	}
}

// writeSignals writes the signal list, capped at maxDisplayedSignals.
func (w *TextWriter) writeSignals(sb *strings.Builder, signals []model.Signal) {
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("   Discovery Signals (%d detected):\n", len(signals)))

	shown := signals
	if len(shown) > maxDisplayedSignals {
		shown = shown[:maxDisplayedSignals]
	}
	for i := range shown {
		sig := &shown[i]
		sb.WriteString(fmt.Sprintf("   [%d] %s (confidence: %.0f%%)\n", i+1, sig.Type, sig.ConfidencePercent()))
		// The description line is written even when empty.
		sb.WriteString(fmt.Sprintf("       %s\n", truncateDescription(sig.GetDescription())))
		sb.WriteString(fmt.Sprintf("       Source: %s\n", sig.GetSource()))
	}

	if len(signals) > maxDisplayedSignals {
		sb.WriteString(fmt.Sprintf("   ... and %d more signals\n", len(signals)-maxDisplayedSignals))
	}
}

// writeSummarySection writes the distribution and ranking blocks.
func (w *TextWriter) writeSummarySection(sb *strings.Builder, summary *model.Summary) {
	banner := strings.Repeat("=", 80)

	sb.WriteString(banner + "\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(banner + "\n")
	sb.WriteString("\n")

	sb.WriteString("Signal Type Distribution:\n")
	for _, row := range summary.SignalDistribution {
		sb.WriteString(fmt.Sprintf("   %s: %d signals\n", row.Type, row.Count))
	}
	sb.WriteString("\n")

	sb.WriteString("Top Companies by Score:\n")
	for _, company := range summary.TopCompanies {
		sb.WriteString(fmt.Sprintf("   %d. %s - Score: %s, Signals: %d\n",
			company.Rank, company.Name, formatNumber(company.Score), company.SignalCount))
	}
}

// formatNumber renders a score the way the document wrote it: an integer
// token prints as an integer, a token with a decimal point or exponent
// prints in minimal decimal notation but keeps at least one decimal, so
// 87 stays 87 and 87.0 stays 87.0. Exponent notation is never emitted.
func formatNumber(n json.Number) string {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		return s
	}
	value, err := n.Float64()
	if err != nil {
		return s
	}
	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(formatted, ".") {
		formatted += ".0"
	}
	return formatted
}

// truncateDescription enforces the description character budget: text
// over descriptionLimit characters is cut at the limit and marked with
// an ellipsis. The count is by character, so a cut can land mid-word.
// Text at exactly the limit passes through unmodified.
func truncateDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) <= descriptionLimit {
		return desc
	}
	return string(runes[:descriptionLimit]) + "..."
}
