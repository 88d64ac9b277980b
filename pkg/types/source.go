// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the heritage-reporter
// pipeline: normalized archive records, report documents, and per-stage
// configuration.
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

// RecordType classifies an archive item by its media kind. The values match
// the Europeana TYPE facet.
type RecordType string

const (
	TypeText    RecordType = "TEXT"
	TypeImage   RecordType = "IMAGE"
	TypeVideo   RecordType = "VIDEO"
	TypeSound   RecordType = "SOUND"
	Type3D      RecordType = "3D"
	TypeUnknown RecordType = "UNKNOWN"
)

// ParseRecordType maps a raw type string to a RecordType. Unrecognized
// values fold to TypeUnknown rather than failing.
func ParseRecordType(s string) RecordType {
	switch RecordType(s) {
	case TypeText, TypeImage, TypeVideo, TypeSound, Type3D:
		return RecordType(s)
	default:
		return TypeUnknown
	}
}

// MediaLink is one URI to a preview or full media representation of a
// record, with a best-effort MIME type derived from the resource metadata
// or the file extension.
type MediaLink struct {
	URL      string `json:"url" yaml:"url"`
	MimeType string `json:"mime_type" yaml:"mime_type"`
}

// SourceRecord is the canonical representation of one archive item after
// normalization. It is created once per unique ID encountered during a run
// and never mutated after content extraction.
type SourceRecord struct {
	// ID is the globally unique archive identifier (e.g. "/9200303/BibliographicResource_123").
	// It drives deduplication across search pages.
	ID string `json:"id" yaml:"id"`

	// Title is the record title; empty when the archive supplies none.
	Title string `json:"title" yaml:"title"`

	// Creator is the attributed author or originator, when known.
	Creator string `json:"creator,omitempty" yaml:"creator,omitempty"`

	// Description is the record description; possibly empty.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Date is the item date as reported by the archive, verbatim (archives
	// mix years, ranges, and free text).
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// Type drives which downstream steps apply (only TEXT records are
	// candidates for content extraction).
	Type RecordType `json:"type" yaml:"type"`

	// Provider is the contributing aggregator; DataProvider the holding
	// institution. Both feed diversity scoring.
	Provider     string `json:"provider" yaml:"provider"`
	DataProvider string `json:"data_provider,omitempty" yaml:"data_provider,omitempty"`

	// Country and Language are optional locale metadata.
	Country  string `json:"country,omitempty" yaml:"country,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// ShownAt is the archive's landing-page URL for the item.
	ShownAt string `json:"shown_at,omitempty" yaml:"shown_at,omitempty"`

	// MediaLinks lists deduplicated URIs to previews or full media, in the
	// order the archive reported them.
	MediaLinks []MediaLink `json:"media_links,omitempty" yaml:"media_links,omitempty"`

	// Rights is the license/rights statement URI. Absence is a recoverable
	// omission; citation formatting substitutes a fixed marker.
	Rights string `json:"rights,omitempty" yaml:"rights,omitempty"`

	// Extracted holds bounded text pulled from a linked document. Populated
	// only for TEXT records that carry a document payload.
	Extracted *ExtractedText `json:"extracted,omitempty" yaml:"extracted,omitempty"`
}

// ExtractedText is bounded text content pulled from a linked document.
// Extraction is explicitly partial: PagesScanned records how far it went and
// TotalPages how many pages the document has, when known.
type ExtractedText struct {
	// Pages holds the per-page text; pages that yielded no text are absent.
	Pages []PageText `json:"pages" yaml:"pages"`

	// PagesScanned is the number of pages read (capped by configuration).
	PagesScanned int `json:"pages_scanned" yaml:"pages_scanned"`

	// TotalPages is the page count of the source document, 0 if unknown.
	TotalPages int `json:"total_pages" yaml:"total_pages"`

	// Partial reports whether the cap cut extraction short.
	Partial bool `json:"partial" yaml:"partial"`

	// SourceURL is the document URI the text came from.
	SourceURL string `json:"source_url" yaml:"source_url"`
}

// PageText is the text of a single document page.
type PageText struct {
	Number  int    `json:"number" yaml:"number"`
	Content string `json:"content" yaml:"content"`
}
