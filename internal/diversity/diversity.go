// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diversity scores and tracks the distribution of accepted sources
// across provider, type, and country dimensions, and decides which records
// a report run admits.
//
// See docs/ARCHITECTURE.md § Diversity Analyzer.
package diversity

import (
	"github.com/pdiddy/heritage-reporter/pkg/types"
)

// unknownValue stands in for an empty dimension value so that records with
// missing metadata still count toward exactly one bucket per dimension.
const unknownValue = "Unknown"

// State accumulates per-dimension counts for one report run. The sum of
// counts in each dimension always equals the number of accepted records.
type State struct {
	Providers map[string]int
	Types     map[string]int
	Countries map[string]int

	// Skipped counts records the run discarded before admission, typically
	// malformed ones. The caller increments it; it only feeds the summary.
	Skipped int

	accepted    int
	acceptedIDs map[string]bool

	duplicates int
	deferred   []types.SourceRecord
}

// NewState returns an empty accumulator.
func NewState() *State {
	return &State{
		Providers:   make(map[string]int),
		Types:       make(map[string]int),
		Countries:   make(map[string]int),
		acceptedIDs: make(map[string]bool),
	}
}

// Accepted returns the number of records admitted so far.
func (s *State) Accepted() int { return s.accepted }

// Duplicates returns the number of records rejected as already-accepted IDs.
func (s *State) Duplicates() int { return s.duplicates }

// Deferred returns the records held back by diversity gating, in original
// search-result order.
func (s *State) Deferred() []types.SourceRecord { return s.deferred }

// Analyzer applies the admission policy for one run.
type Analyzer struct {
	// Target is the desired number of accepted sources.
	Target int

	// MinCount is the accepted-count threshold below which every
	// non-duplicate record is admitted. Once reached, a record must improve
	// diversity to be admitted immediately; otherwise it is deferred.
	MinCount int
}

// NewAnalyzer derives the minimum count from the configured fraction of the
// target, never below 1.
func NewAnalyzer(target int, cfg types.DiversityConfig) *Analyzer {
	frac := cfg.MinCountFraction
	if frac <= 0 || frac > 1 {
		frac = 0.5
	}
	minCount := int(float64(target) * frac)
	if minCount < 1 {
		minCount = 1
	}
	return &Analyzer{Target: target, MinCount: minCount}
}

// Admit decides whether a record joins the accepted set. Duplicate IDs are
// always rejected. Below MinCount every record is accepted; after that a
// record is accepted only if its provider, type, or country is currently
// under-represented relative to the running average, and is otherwise
// deferred for a secondary pass. Counters mutate only on acceptance.
func (a *Analyzer) Admit(rec types.SourceRecord, s *State) bool {
	if s.acceptedIDs[rec.ID] {
		s.duplicates++
		return false
	}

	if s.accepted < a.MinCount || a.improvesDiversity(rec, s) {
		s.accept(rec)
		return true
	}

	s.deferred = append(s.deferred, rec)
	return false
}

// PromoteDeferred admits deferred records in original order until the
// accepted count reaches the target or the queue empties, and returns the
// records it admitted. Used once pagination exhausts with the target unmet.
func (a *Analyzer) PromoteDeferred(s *State) []types.SourceRecord {
	var promoted []types.SourceRecord
	for len(s.deferred) > 0 && s.accepted < a.Target {
		rec := s.deferred[0]
		s.deferred = s.deferred[1:]
		if s.acceptedIDs[rec.ID] {
			s.duplicates++
			continue
		}
		s.accept(rec)
		promoted = append(promoted, rec)
	}
	return promoted
}

// improvesDiversity reports whether any of the record's dimension values is
// under-represented: its current count is strictly below the running mean
// count across the distinct values seen in that dimension.
func (a *Analyzer) improvesDiversity(rec types.SourceRecord, s *State) bool {
	return underRepresented(s.Providers, providerKey(rec), s.accepted) ||
		underRepresented(s.Types, string(rec.Type), s.accepted) ||
		underRepresented(s.Countries, valueOrUnknown(rec.Country), s.accepted)
}

func underRepresented(counts map[string]int, value string, accepted int) bool {
	distinct := len(counts)
	if value != "" && counts[value] == 0 {
		// A brand-new value widens the dimension.
		distinct++
	}
	if distinct == 0 {
		return true
	}
	mean := float64(accepted) / float64(distinct)
	return float64(counts[value]) < mean
}

func (s *State) accept(rec types.SourceRecord) {
	s.acceptedIDs[rec.ID] = true
	s.accepted++
	s.Providers[providerKey(rec)]++
	s.Types[string(rec.Type)]++
	s.Countries[valueOrUnknown(rec.Country)]++
}

func providerKey(rec types.SourceRecord) string {
	if rec.Provider != "" {
		return rec.Provider
	}
	return valueOrUnknown(rec.DataProvider)
}

func valueOrUnknown(v string) string {
	if v == "" {
		return unknownValue
	}
	return v
}

// Report produces the percentage breakdown per dimension for inclusion in
// the final document. Percentages are of the accepted count.
func Report(s *State) types.DiversitySummary {
	return types.DiversitySummary{
		Accepted:   s.accepted,
		Providers:  percentages(s.Providers, s.accepted),
		Types:      percentages(s.Types, s.accepted),
		Countries:  percentages(s.Countries, s.accepted),
		Duplicates: s.duplicates,
		Deferred:   len(s.deferred),
		Skipped:    s.Skipped,
	}
}

func percentages(counts map[string]int, total int) map[string]float64 {
	out := make(map[string]float64, len(counts))
	if total == 0 {
		return out
	}
	for k, v := range counts {
		out[k] = 100 * float64(v) / float64(total)
	}
	return out
}
