// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "heritage-reporter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the archive search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the Europeana Search API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Rows is the page size requested from the search API (default 20).
	Rows int `json:"rows" yaml:"rows"`

	// MaxPages caps how many result pages one run may request (default 10).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// Profile is the Europeana result profile (default "rich").
	Profile string `json:"profile" yaml:"profile"`
}

// ExtractionConfig holds settings for bounded document text extraction.
type ExtractionConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxPDFPages caps how many pages are read from one document (default 3).
	MaxPDFPages int `json:"max_pdf_pages" yaml:"max_pdf_pages"`

	// DocTimeout is the per-document fetch+parse deadline (default 30s).
	DocTimeout time.Duration `json:"doc_timeout" yaml:"doc_timeout"`

	// Parallelism bounds concurrent extractions (default 4). Block order in
	// the final document always follows admission order regardless.
	Parallelism int `json:"parallelism" yaml:"parallelism"`
}

// DiversityConfig holds settings for the diversity admission policy.
type DiversityConfig struct {
	// MinCountFraction is the fraction of the target that is always
	// accepted before diversity gating starts (default 0.5).
	MinCountFraction float64 `json:"min_count_fraction" yaml:"min_count_fraction"`
}

// StoreConfig holds settings for the report archive.
type StoreConfig struct {
	// ReportsDir is the directory holding the archive database (default
	// "reports/").
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search     SearchConfig     `json:"search" yaml:"search"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Diversity  DiversityConfig  `json:"diversity" yaml:"diversity"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}

// DefaultPipelineConfig returns the configuration used when no file or
// environment overrides are present.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{Timeout: 15 * time.Second, UserAgent: "heritage-reporter/0.1"},
			Rows:       20,
			MaxPages:   10,
			Profile:    "rich",
		},
		Extraction: ExtractionConfig{
			HTTPConfig:  HTTPConfig{Timeout: 30 * time.Second, UserAgent: "heritage-reporter/0.1"},
			MaxPDFPages: 3,
			DocTimeout:  30 * time.Second,
			Parallelism: 4,
		},
		Diversity: DiversityConfig{MinCountFraction: 0.5},
		Store:     StoreConfig{ReportsDir: "reports"},
	}
}
