package model

import "fmt"

// Signal type identifiers emitted by the enrichment API.
//
// Unknown types still render in the signal list and count in the
// distribution; they just trigger no insight rule.
const (
	// SignalHiringExpansion indicates active hiring or workforce growth.
	SignalHiringExpansion = "hiring-expansion"

	// SignalOfficeOpening indicates a new office location.
	SignalOfficeOpening = "office-opening"

	// SignalFundingRound indicates a recent investment round.
	SignalFundingRound = "funding-round"

	// SignalMarketEntry indicates expansion into a new market.
	SignalMarketEntry = "market-entry"

	// SignalSubsidiaryCreation indicates a newly created subsidiary.
	SignalSubsidiaryCreation = "subsidiary-creation"
)

// LargeEmployerThreshold is the headcount at which a company counts as a
// large employer for the payroll opportunity insight.
const LargeEmployerThreshold = 1000

// signalInsight pairs a signal type with the banking insight it triggers.
type signalInsight struct {
	signalType string
	insight    string
}

// signalInsights lists the presence-triggered insight rules in report order.
// The order is part of the report contract and must not change.
var signalInsights = []signalInsight{
	{SignalOfficeOpening, "New office = new employee banking relationships"},
	{SignalFundingRound, "Recent funding = cash flow needs, banking relationship opportunity"},
	{SignalMarketEntry, "Market entry = needs local banking partner"},
	{SignalSubsidiaryCreation, "New subsidiary = separate payroll/banking needs"},
}

// Insights returns the employee banking insights for the entity in fixed
// report order: the large employer rule, then the hiring volume rule, then
// the presence rules from signalInsights. Signal counting covers the full
// signal list, not the subset shown in the report. The result is empty when
// no rule matches; the report still prints the section header in that case.
func (e *Entity) Insights() []string {
	insights := make([]string, 0, len(signalInsights)+2)

	if e.GetHeadcount() >= LargeEmployerThreshold {
		insights = append(insights, "Large employer = high payroll volume opportunity")
	}
	if n := e.CountSignals(SignalHiringExpansion); n > 0 {
		insights = append(insights, fmt.Sprintf("%d hiring signals = growing workforce needs payroll accounts", n))
	}
	for _, rule := range signalInsights {
		if e.HasSignal(rule.signalType) {
			insights = append(insights, rule.insight)
		}
	}

	return insights
}
