package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/prospectscan/prospectscan/internal/model"
)

// highPotentialScore is the score at which a company counts as a
// high-potential prospect in the markdown overview alert.
const highPotentialScore = 80

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full result in Markdown format.
func (w *MarkdownWriter) Write(result *model.Result) (int, error) {
	summary := result.EnsureSummary()
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeCompanies(md, result)
	w.writeDistribution(md, summary)
	w.writeTopCompanies(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Discovery Summary")
	md.PlainText("")
	w.writeDistribution(md, summary)
	w.writeTopCompanies(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and the data quality overview.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.Result) {
	md.H1("Prospect Discovery Report")
	md.PlainText("")

	sources := "-"
	if len(result.DataQuality.SourcesUsed) > 0 {
		sources = strings.Join(result.DataQuality.SourcesUsed, ", ")
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Sources Used", sources},
			{"Companies Discovered", strconv.Itoa(result.CompanyCount())},
			{"Signals Reported", strconv.Itoa(result.ReportedSignalCount())},
			{"Signals Attached", strconv.Itoa(result.DetectedSignalCount())},
		},
	})
	md.PlainText("")

	w.writeAlert(md, result)
}

// writeAlert writes an overview alert based on the result contents.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.Result) {
	if reported, detected := result.ReportedSignalCount(), result.DetectedSignalCount(); reported != detected {
		md.Warningf(
			"Signal count drift: the enrichment API reported %d signals but %d are attached to companies.",
			reported, detected,
		)
		md.PlainText("")
	}

	switch {
	case result.CompanyCount() == 0:
		md.Note("No companies were discovered in this run.")
	case w.countHighPotential(result) > 0:
		md.Tip(fmt.Sprintf(
			"%d company(ies) scored %d or higher and should be prioritized for outreach.",
			w.countHighPotential(result), highPotentialScore,
		))
	default:
		md.Note("No high-potential companies in this run.")
	}
	md.PlainText("")
}

// countHighPotential counts companies at or above highPotentialScore.
func (w *MarkdownWriter) countHighPotential(result *model.Result) int {
	count := 0
	for i := range result.Entities {
		if result.Entities[i].GetScore() >= highPotentialScore {
			count++
		}
	}
	return count
}

// writeCompanies writes one section per discovered company.
func (w *MarkdownWriter) writeCompanies(md *markdown.Markdown, result *model.Result) {
	md.H2("Companies")
	md.PlainText("")

	if result.CompanyCount() == 0 {
		md.PlainText("No companies discovered.")
		md.PlainText("")
		return
	}

	for i := range result.Entities {
		w.writeCompany(md, i+1, &result.Entities[i])
	}
}

// writeCompany writes the profile, breakdown, signals, and insights of
// one company.
func (w *MarkdownWriter) writeCompany(md *markdown.Markdown, index int, entity *model.Entity) {
	md.PlainTextf("### #%d %s", index, entity.Name)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Industry", entity.GetIndustry()},
			{"Headcount", strconv.Itoa(entity.GetHeadcount())},
			{"Size", entity.GetSize()},
			{"City", entity.GetCity()},
			{"Score", formatNumber(entity.ScoreNumber()) + "/100"},
		},
	})
	md.PlainText("")

	if len(entity.ScoreBreakdown) > 0 {
		md.PlainText("**Score Breakdown**")
		md.PlainText("")
		factors := make([]string, 0, len(entity.ScoreBreakdown))
		for _, factor := range entity.ScoreBreakdown {
			factors = append(factors, fmt.Sprintf("%s: %s", factor.Name, formatNumber(factor.Score)))
		}
		md.BulletList(factors...)
		md.PlainText("")
	}

	if len(entity.Signals) > 0 {
		w.writeSignalsTable(md, entity.Signals)
	}

	if insights := entity.Insights(); len(insights) > 0 {
		md.PlainText("**Why this matters**")
		md.PlainText("")
		md.BulletList(insights...)
		md.PlainText("")
	}
}

// writeSignalsTable writes a table of all signals for one company.
func (w *MarkdownWriter) writeSignalsTable(md *markdown.Markdown, signals []model.Signal) {
	rows := make([][]string, len(signals))
	for i := range signals {
		sig := &signals[i]
		source := sig.GetSource()
		if source == "" {
			source = "-"
		}
		rows[i] = []string{
			sig.Type,
			fmt.Sprintf("%.0f%%", sig.ConfidencePercent()),
			truncateString(sig.GetDescription(), 60),
			truncateString(source, 40),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Type", "Confidence", "Description", "Source"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDistribution writes the signal type distribution with a pie chart.
func (w *MarkdownWriter) writeDistribution(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Signal Type Distribution")
	md.PlainText("")

	if len(summary.SignalDistribution) == 0 {
		md.PlainText("No signals detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.SignalDistribution))
	for i, row := range summary.SignalDistribution {
		rows[i] = []string{row.Type, strconv.Itoa(row.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Signal Type", "Count"},
		Rows:   rows,
	})

	w.writePieChart(md, summary)
}

// writePieChart writes a mermaid pie chart of the signal distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Signal Type Distribution"),
		piechart.WithShowData(true),
	)

	for _, row := range summary.SignalDistribution {
		if row.Count > 0 {
			chart.LabelAndIntValue(row.Type, uint64(row.Count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeTopCompanies writes the score ranking table.
func (w *MarkdownWriter) writeTopCompanies(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Top Companies by Score")
	md.PlainText("")

	if len(summary.TopCompanies) == 0 {
		md.PlainText("No companies to rank.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.TopCompanies))
	for i, company := range summary.TopCompanies {
		rows[i] = []string{
			strconv.Itoa(company.Rank),
			company.Name,
			formatNumber(company.Score),
			strconv.Itoa(company.SignalCount),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Company", "Score", "Signals"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [prospectscan](https://github.com/prospectscan/prospectscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
