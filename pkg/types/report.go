// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Disclaimer is the fixed boilerplate attached to every finalized report.
// It asserts that nothing in the document was fabricated beyond the archive
// metadata, and is never omitted.
const Disclaimer = "This document contains only information and links that were " +
	"directly found in the archive search results. No additional content or " +
	"analysis has been generated beyond what the archive API explicitly provided. " +
	"All titles, descriptions, dates, and URLs are exact copies from the source " +
	"metadata. No content has been modified, translated, or interpreted."

// Citation is a deterministic bibliographic entry derived from a
// SourceRecord. Formatting identical input always yields an identical
// Citation; no timestamps or randomness are involved.
type Citation struct {
	// Text is the full formatted reference line.
	Text string `json:"text" yaml:"text"`

	// Rights is the rights statement URI, or the fixed "rights unknown"
	// marker when the record carried none.
	Rights string `json:"rights" yaml:"rights"`

	// URL points back to the archive item.
	URL string `json:"url" yaml:"url"`
}

// SourceBlock is one per-source section of a report: the record itself, its
// citation, and a note when content extraction was attempted but failed.
type SourceBlock struct {
	Record   SourceRecord `json:"record" yaml:"record"`
	Citation Citation     `json:"citation" yaml:"citation"`

	// ExtractionNote is non-empty when extraction was attempted and failed;
	// the failure never removes the source from the report.
	ExtractionNote string `json:"extraction_note,omitempty" yaml:"extraction_note,omitempty"`
}

// DiversitySummary is the percentage breakdown of accepted sources per
// dimension, plus run degradation tallies.
type DiversitySummary struct {
	Accepted   int                `json:"accepted" yaml:"accepted"`
	Providers  map[string]float64 `json:"providers" yaml:"providers"`
	Types      map[string]float64 `json:"types" yaml:"types"`
	Countries  map[string]float64 `json:"countries" yaml:"countries"`
	Duplicates int                `json:"duplicates_rejected" yaml:"duplicates_rejected"`
	Deferred   int                `json:"deferred" yaml:"deferred"`
	Skipped    int                `json:"skipped_malformed" yaml:"skipped_malformed"`
}

// ReportDocument is the final output of one generateReport run. It is
// immutable once the assembler finalizes it.
type ReportDocument struct {
	Topic       string    `json:"topic" yaml:"topic"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Sources are ordered by the diversity analyzer's admission order.
	Sources []SourceBlock `json:"sources" yaml:"sources"`

	// Bibliography is index-aligned with Sources.
	Bibliography []Citation `json:"bibliography" yaml:"bibliography"`

	Diversity DiversitySummary `json:"diversity" yaml:"diversity"`

	// Notes records degradations: skipped records, failed extractions,
	// pagination exhausted before the target, or "no sources found".
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// Disclaimer is always the fixed Disclaimer constant.
	Disclaimer string `json:"disclaimer" yaml:"disclaimer"`
}
