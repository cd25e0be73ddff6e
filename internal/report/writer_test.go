package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/prospectscan/prospectscan/internal/model"
)

// strPtr returns a pointer to s.
func strPtr(s string) *string {
	return &s
}

// intPtr returns a pointer to n.
func intPtr(n int) *int {
	return &n
}

// floatPtr returns a pointer to f.
func floatPtr(f float64) *float64 {
	return &f
}

// numberPtr returns a pointer to the given JSON number text.
func numberPtr(n json.Number) *json.Number {
	return &n
}

// createTestResult creates a result with sample data for testing.
func createTestResult() *model.Result {
	return &model.Result{
		Entities: []model.Entity{
			{
				Name:      "Gulf Freight LLC",
				Industry:  strPtr("Logistics"),
				Headcount: intPtr(1200),
				Size:      strPtr("1001-5000"),
				City:      strPtr("Dubai"),
				Score:     numberPtr("92"),
				ScoreBreakdown: model.ScoreBreakdown{
					{Name: "signals", Score: "50"},
					{Name: "scale", Score: "42"},
				},
				Signals: []model.Signal{
					{
						Type:        model.SignalHiringExpansion,
						Confidence:  floatPtr(0.9),
						Description: strPtr("Hiring 200 drivers"),
						Source:      strPtr("job-board"),
					},
				},
			},
			{
				Name: "Desert Bloom Cafe",
				City: strPtr("Sharjah"),
				Signals: []model.Signal{
					{Type: model.SignalOfficeOpening, Confidence: floatPtr(0.6)},
				},
			},
		},
		DataQuality: model.DataQuality{
			SourcesUsed: []string{"news", "registry"},
			SignalCount: 3,
		},
	}
}

// TestTextWriterGolden compares a full report against the expected layout
// line by line.
func TestTextWriterGolden(t *testing.T) {
	t.Parallel()

	result := &model.Result{
		Entities: []model.Entity{
			{
				Name:      "Gulf Freight LLC",
				Industry:  strPtr("Logistics"),
				Headcount: intPtr(1200),
				Size:      strPtr("1001-5000"),
				City:      strPtr("Dubai"),
				Score:     numberPtr("92"),
				ScoreBreakdown: model.ScoreBreakdown{
					{Name: "signals", Score: "50"},
					{Name: "scale", Score: "42"},
				},
				Signals: []model.Signal{
					{
						Type:        model.SignalHiringExpansion,
						Confidence:  floatPtr(0.9),
						Description: strPtr("Hiring 200 drivers"),
						Source:      strPtr("job-board"),
					},
				},
			},
		},
		DataQuality: model.DataQuality{
			SourcesUsed: []string{"news", "registry"},
			SignalCount: 3,
		},
	}

	var buf bytes.Buffer
	if _, err := NewTextWriter(&buf).Write(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	banner := strings.Repeat("=", 80)
	rule := strings.Repeat("-", 60)
	want := strings.Join([]string{
		banner,
		"DISCOVERY ENGINE STRESS TEST - Employee Banking UAE",
		banner,
		"",
		"Sources Used: news, registry",
		"Total Companies Discovered: 1",
		"Total Signals Detected: 3",
		"",
		banner,
		"DISCOVERED COMPANIES & SIGNALS",
		banner,
		"",
		"#1 Gulf Freight LLC",
		rule,
		"   Industry: Logistics",
		"   Headcount: 1,200 employees",
		"   Size: 1001-5000",
		"   City: Dubai",
		"   Score: 92/100",
		"",
		"   Score Breakdown:",
		"      - signals: 50",
		"      - scale: 42",
		"",
		"   Discovery Signals (1 detected):",
		"   [1] hiring-expansion (confidence: 90%)",
		"       Hiring 200 drivers",
		"       Source: job-board",
		"",
		"   WHY THIS MATTERS FOR EMPLOYEE BANKING:",
		"   * Large employer = high payroll volume opportunity",
		"   * 1 hiring signals = growing workforce needs payroll accounts",
		"",
		banner,
		"SUMMARY",
		banner,
		"",
		"Signal Type Distribution:",
		"   hiring-expansion: 1 signals",
		"",
		"Top Companies by Score:",
		"   1. Gulf Freight LLC - Score: 92, Signals: 1",
	}, "\n") + "\n"

	if got := buf.String(); got != want {
		t.Errorf("report layout drifted:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// TestTextWriterEmptyResult tests rendering with no discovered companies.
func TestTextWriterEmptyResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewTextWriter(&buf).Write(&model.Result{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	banner := strings.Repeat("=", 80)
	want := strings.Join([]string{
		banner,
		"DISCOVERY ENGINE STRESS TEST - Employee Banking UAE",
		banner,
		"",
		"Sources Used: ",
		"Total Companies Discovered: 0",
		"Total Signals Detected: 0",
		"",
		banner,
		"DISCOVERED COMPANIES & SIGNALS",
		banner,
		"",
		banner,
		"SUMMARY",
		banner,
		"",
		"Signal Type Distribution:",
		"",
		"Top Companies by Score:",
	}, "\n") + "\n"

	if got := buf.String(); got != want {
		t.Errorf("empty report layout drifted:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

// TestTextWriter tests individual rendering rules.
func TestTextWriter(t *testing.T) {
	t.Parallel()

	render := func(t *testing.T, result *model.Result) string {
		t.Helper()
		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return buf.String()
	}

	t.Run("absent optional fields use display defaults", func(t *testing.T) {
		t.Parallel()

		output := render(t, &model.Result{Entities: []model.Entity{{Name: "Bare Co"}}})
		for _, want := range []string{
			"   Industry: N/A\n",
			"   Headcount: 0 employees\n",
			"   Size: N/A\n",
			"   City: N/A\n",
			"   Score: 0/100\n",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("present empty industry renders empty", func(t *testing.T) {
		t.Parallel()

		output := render(t, &model.Result{Entities: []model.Entity{
			{Name: "Bare Co", Industry: strPtr("")},
		}})
		if !strings.Contains(output, "   Industry: \n") {
			t.Error("expected empty industry to render as empty, not N/A")
		}
	})

	t.Run("reported signal count is passed through", func(t *testing.T) {
		t.Parallel()

		result := &model.Result{
			Entities: []model.Entity{
				{Name: "Acme", Signals: []model.Signal{{Type: "x"}}},
			},
			DataQuality: model.DataQuality{SignalCount: 999},
		}
		output := render(t, result)
		if !strings.Contains(output, "Total Signals Detected: 999\n") {
			t.Error("expected reported count 999 to be printed verbatim")
		}
	})

	t.Run("fractional score keeps decimals", func(t *testing.T) {
		t.Parallel()

		output := render(t, &model.Result{Entities: []model.Entity{
			{Name: "Acme", Score: numberPtr("87.5")},
		}})
		if !strings.Contains(output, "   Score: 87.5/100\n") {
			t.Error("expected fractional score to keep decimals")
		}
	})

	t.Run("integral decimal score keeps its decimal point", func(t *testing.T) {
		t.Parallel()

		output := render(t, &model.Result{Entities: []model.Entity{
			{
				Name:  "Acme",
				Score: numberPtr("87.0"),
				ScoreBreakdown: model.ScoreBreakdown{
					{Name: "signals", Score: "40.0"},
				},
			},
		}})
		if !strings.Contains(output, "   Score: 87.0/100\n") {
			t.Error("expected 87.0 to keep its decimal point")
		}
		if !strings.Contains(output, "      - signals: 40.0\n") {
			t.Error("expected breakdown value 40.0 to keep its decimal point")
		}
		if !strings.Contains(output, "   1. Acme - Score: 87.0, Signals: 0\n") {
			t.Error("expected ranking to keep the document's score text")
		}
	})

	t.Run("score breakdown keeps document order", func(t *testing.T) {
		t.Parallel()

		output := render(t, &model.Result{Entities: []model.Entity{
			{
				Name: "Acme",
				ScoreBreakdown: model.ScoreBreakdown{
					{Name: "zeta", Score: "10"},
					{Name: "alpha", Score: "20"},
				},
			},
		}})
		zeta := strings.Index(output, "- zeta: 10")
		alpha := strings.Index(output, "- alpha: 20")
		if zeta == -1 || alpha == -1 || zeta > alpha {
			t.Errorf("expected breakdown in document order, got:\n%s", output)
		}
	})

	t.Run("empty breakdown is omitted", func(t *testing.T) {
		t.Parallel()

		output := render(t, &model.Result{Entities: []model.Entity{{Name: "Acme"}}})
		if strings.Contains(output, "Score Breakdown:") {
			t.Error("did not expect a breakdown section")
		}
	})

	t.Run("signal defaults render as zero percent and N/A", func(t *testing.T) {
		t.Parallel()

		output := render(t, &model.Result{Entities: []model.Entity{
			{Name: "Acme", Signals: []model.Signal{{Type: model.SignalFundingRound}}},
		}})
		want := "   [1] funding-round (confidence: 0%)\n       \n       Source: N/A\n"
		if !strings.Contains(output, want) {
			t.Errorf("expected signal stanza %q in output:\n%s", want, output)
		}
	})

	t.Run("confidence rounds to whole percent", func(t *testing.T) {
		t.Parallel()

		output := render(t, &model.Result{Entities: []model.Entity{
			{Name: "Acme", Signals: []model.Signal{
				{Type: "a", Confidence: floatPtr(0.666)},
				{Type: "b", Confidence: floatPtr(0.333)},
			}},
		}})
		if !strings.Contains(output, "(confidence: 67%)") {
			t.Error("expected 0.666 to round to 67%")
		}
		if !strings.Contains(output, "(confidence: 33%)") {
			t.Error("expected 0.333 to round to 33%")
		}
	})

	t.Run("out of range confidence passes through", func(t *testing.T) {
		t.Parallel()

		output := render(t, &model.Result{Entities: []model.Entity{
			{Name: "Acme", Signals: []model.Signal{
				{Type: "a", Confidence: floatPtr(1.5)},
			}},
		}})
		if !strings.Contains(output, "(confidence: 150%)") {
			t.Error("expected 1.5 to render as 150%")
		}
	})

	t.Run("insight header prints with zero matches", func(t *testing.T) {
		t.Parallel()

		output := render(t, &model.Result{Entities: []model.Entity{
			{Name: "Quiet Co", Headcount: intPtr(40)},
		}})
		want := "   WHY THIS MATTERS FOR EMPLOYEE BANKING:\n\n" + strings.Repeat("=", 80)
		if !strings.Contains(output, want) {
			t.Errorf("expected insight header with no bullets, got:\n%s", output)
		}
	})
}

// TestTextWriterSignalCap tests the five signal display limit.
func TestTextWriterSignalCap(t *testing.T) {
	t.Parallel()

	render := func(t *testing.T, count int) string {
		t.Helper()
		signals := make([]model.Signal, 0, count)
		for i := 0; i < count; i++ {
			signals = append(signals, model.Signal{Type: "press-mention", Confidence: floatPtr(0.5)})
		}
		var buf bytes.Buffer
		result := &model.Result{Entities: []model.Entity{{Name: "Acme", Signals: signals}}}
		if _, err := NewTextWriter(&buf).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return buf.String()
	}

	t.Run("seven signals show five plus trailer", func(t *testing.T) {
		t.Parallel()

		output := render(t, 7)
		if !strings.Contains(output, "   Discovery Signals (7 detected):\n") {
			t.Error("expected total count of 7 in section header")
		}
		if !strings.Contains(output, "   [5] press-mention") {
			t.Error("expected fifth signal to be rendered")
		}
		if strings.Contains(output, "   [6] press-mention") {
			t.Error("did not expect sixth signal to be rendered")
		}
		if !strings.Contains(output, "   ... and 2 more signals\n") {
			t.Error("expected trailer for remaining signals")
		}
	})

	t.Run("five signals show all without trailer", func(t *testing.T) {
		t.Parallel()

		output := render(t, 5)
		if !strings.Contains(output, "   [5] press-mention") {
			t.Error("expected fifth signal to be rendered")
		}
		if strings.Contains(output, "more signals") {
			t.Error("did not expect a trailer line")
		}
	})
}

// TestTextWriterStableRanking tests that equal scores keep document order.
func TestTextWriterStableRanking(t *testing.T) {
	t.Parallel()

	result := &model.Result{Entities: []model.Entity{
		{Name: "A", Score: numberPtr("50")},
		{Name: "B", Score: numberPtr("90")},
		{Name: "C", Score: numberPtr("90")},
		{Name: "D", Score: numberPtr("10")},
	}}

	var buf bytes.Buffer
	if _, err := NewTextWriter(&buf).Write(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"Top Companies by Score:",
		"   1. B - Score: 90, Signals: 0",
		"   2. C - Score: 90, Signals: 0",
		"   3. A - Score: 50, Signals: 0",
		"   4. D - Score: 10, Signals: 0",
	}, "\n") + "\n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected stable ranking block:\n%s\ngot:\n%s", want, buf.String())
	}
}

// TestTextWriterDistributionCountsFullLists tests that the distribution is
// not limited to displayed signals.
func TestTextWriterDistributionCountsFullLists(t *testing.T) {
	t.Parallel()

	first := make([]model.Signal, 0, 7)
	for i := 0; i < 7; i++ {
		first = append(first, model.Signal{Type: model.SignalHiringExpansion})
	}
	second := make([]model.Signal, 0, 3)
	for i := 0; i < 3; i++ {
		second = append(second, model.Signal{Type: model.SignalHiringExpansion})
	}
	result := &model.Result{Entities: []model.Entity{
		{Name: "A", Signals: first},
		{Name: "B", Signals: second},
	}}

	var buf bytes.Buffer
	if _, err := NewTextWriter(&buf).Write(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "   hiring-expansion: 10 signals\n") {
		t.Errorf("expected distribution over full lists, got:\n%s", buf.String())
	}
}

// TestTextWriterWriteSummary tests the standalone summary output.
func TestTextWriterWriteSummary(t *testing.T) {
	t.Parallel()

	summary := model.NewSummary(createTestResult())

	var buf bytes.Buffer
	if _, err := NewTextWriter(&buf).WriteSummary(summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.HasPrefix(output, strings.Repeat("=", 80)+"\nSUMMARY\n") {
		t.Errorf("expected output to start with the summary banner, got:\n%s", output)
	}
	if strings.Contains(output, "DISCOVERED COMPANIES") {
		t.Error("did not expect company sections in summary output")
	}
	if !strings.Contains(output, "Top Companies by Score:") {
		t.Error("expected ranking section")
	}
}

// TestTruncateDescription tests the description character budget.
func TestTruncateDescription(t *testing.T) {
	t.Parallel()

	t.Run("exactly at the limit passes through", func(t *testing.T) {
		t.Parallel()

		desc := strings.Repeat("a", 100)
		if got := truncateDescription(desc); got != desc {
			t.Errorf("got %q, expected unmodified input", got)
		}
	})

	t.Run("one over the limit is cut with ellipsis", func(t *testing.T) {
		t.Parallel()

		desc := strings.Repeat("a", 101)
		want := strings.Repeat("a", 100) + "..."
		if got := truncateDescription(desc); got != want {
			t.Errorf("got %d chars, expected %d", len(got), len(want))
		}
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		desc := strings.Repeat("é", 101)
		want := strings.Repeat("é", 100) + "..."
		if got := truncateDescription(desc); got != want {
			t.Errorf("got %q, expected %q", got, want)
		}
	})

	t.Run("empty stays empty", func(t *testing.T) {
		t.Parallel()

		if got := truncateDescription(""); got != "" {
			t.Errorf("got %q, expected empty", got)
		}
	})
}

// TestFormatNumber tests score rendering in the document's own notation.
func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value json.Number
		want  string
	}{
		{"92", "92"},
		{"87.5", "87.5"},
		{"0", "0"},
		{"0.25", "0.25"},
		{"-3", "-3"},
		{"87.0", "87.0"},
		{"87.50", "87.5"},
		{"8.7e1", "87.0"},
		{"-3.0", "-3.0"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.value); got != tt.want {
			t.Errorf("formatNumber(%v): got %q, expected %q", tt.value, got, tt.want)
		}
	}
}

// TestJSONWriter tests the JSON output format.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes compact JSON with summary attached", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)
		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if _, ok := decoded["summary"]; !ok {
			t.Error("expected summary to be attached")
		}
		if _, ok := decoded["entities"]; !ok {
			t.Error("expected entities in output")
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())
		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})

	t.Run("preserves score breakdown order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)
		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		signals := strings.Index(output, `"signals":50`)
		scale := strings.Index(output, `"scale":42`)
		if signals == -1 || scale == -1 || signals > scale {
			t.Errorf("expected ordered breakdown in JSON, got:\n%s", output)
		}
	})

	t.Run("writes summary only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)
		summary := model.NewSummary(createTestResult())
		if _, err := w.WriteSummary(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.Summary
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded.TopCompanies) == 0 {
			t.Error("expected ranked companies in summary output")
		}
	})
}

// TestFullJSONWriter tests the metadata wrapper output.
func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewFullJSONWriter(&buf, "1.2.3", WithPrettyPrint())
	if _, err := w.Write(createTestResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Version     string        `json:"version"`
		GeneratedAt time.Time     `json:"generated_at"`
		Report      *model.Result `json:"report"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Version != "1.2.3" {
		t.Errorf("got version %q, expected %q", decoded.Version, "1.2.3")
	}
	if decoded.GeneratedAt.IsZero() {
		t.Error("expected generated_at timestamp to be set")
	}
	if decoded.Report == nil || decoded.Report.CompanyCount() != 2 {
		t.Error("expected wrapped report with two companies")
	}
}

// TestMultiWriter tests writing to multiple destinations.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes the same report to all writers", func(t *testing.T) {
		t.Parallel()

		var first, second bytes.Buffer
		mw := NewMultiWriter(NewTextWriter(&first), NewTextWriter(&second))

		if _, err := mw.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.String() != second.String() {
			t.Error("expected identical output in both buffers")
		}
		if first.Len() == 0 {
			t.Error("expected non-empty output")
		}
	})

	t.Run("mixes formats", func(t *testing.T) {
		t.Parallel()

		var text, jsonBuf bytes.Buffer
		mw := NewMultiWriter(NewTextWriter(&text), NewJSONWriter(&jsonBuf))

		if _, err := mw.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text.String(), "DISCOVERED COMPANIES") {
			t.Error("expected text output in first buffer")
		}
		if !json.Valid(jsonBuf.Bytes()) {
			t.Error("expected JSON output in second buffer")
		}
	})

	t.Run("writes summaries to all writers", func(t *testing.T) {
		t.Parallel()

		var first, second bytes.Buffer
		mw := NewMultiWriter(NewTextWriter(&first), NewTextWriter(&second))
		summary := model.NewSummary(createTestResult())

		if _, err := mw.WriteSummary(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.String() != second.String() || first.Len() == 0 {
			t.Error("expected identical non-empty summaries")
		}
	})
}

// TestMarkdownWriter tests the Markdown output format.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes full report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)
		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Prospect Discovery Report",
			"### #1 Gulf Freight LLC",
			"### #2 Desert Bloom Cafe",
			"hiring-expansion",
			"## Signal Type Distribution",
			"## Top Companies by Score",
			"```mermaid",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("warns about signal count drift", func(t *testing.T) {
		t.Parallel()

		result := createTestResult()
		result.DataQuality.SignalCount = 40

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Signal count drift") {
			t.Error("expected drift warning")
		}
	})

	t.Run("notes empty runs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(&model.Result{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "No companies were discovered") {
			t.Error("expected empty run note")
		}
		if !strings.Contains(output, "No signals detected.") {
			t.Error("expected empty distribution note")
		}
	})

	t.Run("writes summary only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		summary := model.NewSummary(createTestResult())
		if _, err := NewMarkdownWriter(&buf).WriteSummary(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Discovery Summary") {
			t.Error("expected summary title")
		}
		if strings.Contains(output, "## Companies") {
			t.Error("did not expect company sections")
		}
	})
}

// TestTruncateString tests the markdown cell truncation helper.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string unchanged", input: "short", maxLen: 10, want: "short"},
		{name: "exact length unchanged", input: "exact", maxLen: 5, want: "exact"},
		{name: "long string truncated", input: "this is a long string", maxLen: 10, want: "this is..."},
		{name: "tiny maxLen hard cut", input: "abcdef", maxLen: 2, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}
