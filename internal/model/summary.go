package model

import (
	"encoding/json"
	"sort"
)

// TopCompanyLimit is the number of companies the summary ranking keeps.
const TopCompanyLimit = 5

// TypeCount is one row of the signal type distribution.
type TypeCount struct {
	// Type is the signal type identifier.
	Type string `json:"type"`

	// Count is how many signals of this type were detected.
	Count int `json:"count"`
}

// RankedCompany is one row of the top companies ranking.
type RankedCompany struct {
	// Rank is the 1-based position in the ranking.
	Rank int `json:"rank"`

	// Name is the company name.
	Name string `json:"name"`

	// Score is the company's prospect score, in the document's own
	// number text.
	Score json.Number `json:"score"`

	// SignalCount is the company's total signal count.
	SignalCount int `json:"signal_count"`
}

// Summary aggregates a Result for the report's summary section.
//
// Design decision: Both orderings are deterministic functions of the
// document. Ties are broken by document order using stable sorts, so the
// same input always renders the same report. Aggregation always covers the
// full signal list of every entity, never only the signals the report
// displays.
type Summary struct {
	// SignalDistribution counts signals by type, most frequent first.
	// Types with equal counts keep the order in which they first appeared
	// in the document.
	SignalDistribution []TypeCount `json:"signal_distribution"`

	// TopCompanies ranks up to TopCompanyLimit companies by score,
	// highest first. Companies with equal scores keep document order.
	// A missing score ranks as 0.
	TopCompanies []RankedCompany `json:"top_companies"`
}

// NewSummary aggregates the result into a Summary.
func NewSummary(result *Result) *Summary {
	return &Summary{
		SignalDistribution: signalDistribution(result.Entities),
		TopCompanies:       topCompanies(result.Entities),
	}
}

// signalDistribution counts signals by type across all entities.
func signalDistribution(entities []Entity) []TypeCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := range entities {
		for _, sig := range entities[i].Signals {
			if _, seen := counts[sig.Type]; !seen {
				order = append(order, sig.Type)
			}
			counts[sig.Type]++
		}
	}

	dist := make([]TypeCount, 0, len(order))
	for _, signalType := range order {
		dist = append(dist, TypeCount{Type: signalType, Count: counts[signalType]})
	}
	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Count > dist[j].Count
	})
	return dist
}

// topCompanies ranks entities by score and keeps the top TopCompanyLimit.
func topCompanies(entities []Entity) []RankedCompany {
	indices := make([]int, len(entities))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return entities[indices[i]].GetScore() > entities[indices[j]].GetScore()
	})
	if len(indices) > TopCompanyLimit {
		indices = indices[:TopCompanyLimit]
	}

	ranked := make([]RankedCompany, 0, len(indices))
	for rank, idx := range indices {
		entity := &entities[idx]
		ranked = append(ranked, RankedCompany{
			Rank:        rank + 1,
			Name:        entity.Name,
			Score:       entity.ScoreNumber(),
			SignalCount: len(entity.Signals),
		})
	}
	return ranked
}
