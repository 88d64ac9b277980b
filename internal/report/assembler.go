// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report drives the pipeline that turns a topic into a finished
// report document: search, normalization, diversity admission, content
// extraction, and citation formatting. The assembler is a state machine;
// degradations (malformed records, failed extractions, early pagination
// exhaustion) are recorded as notes, and only authentication failures abort
// a run.
//
// See docs/ARCHITECTURE.md § Report Assembler.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pdiddy/heritage-reporter/internal/cite"
	"github.com/pdiddy/heritage-reporter/internal/diversity"
	"github.com/pdiddy/heritage-reporter/internal/europeana"
	"github.com/pdiddy/heritage-reporter/internal/extract"
	"github.com/pdiddy/heritage-reporter/internal/normalize"
	"github.com/pdiddy/heritage-reporter/pkg/types"
)

// Phase is the assembler's position in the pipeline.
type Phase string

const (
	PhaseInit       Phase = "INIT"
	PhaseSearching  Phase = "SEARCHING"
	PhaseAnalyzing  Phase = "ANALYZING"
	PhaseExtracting Phase = "EXTRACTING"
	PhaseFormatting Phase = "FORMATTING"
	PhaseFinalized  Phase = "FINALIZED"
	PhaseFailed     Phase = "FAILED"
)

// Searcher returns one page of raw archive results per call.
type Searcher interface {
	Search(ctx context.Context, query string, filters []string, cursor string, cfg types.SearchConfig) (europeana.Page, error)
}

// Extractor pulls text content from a record's linked document.
type Extractor interface {
	Extract(ctx context.Context, rec types.SourceRecord) (*types.ExtractedText, error)
}

// Assembler runs one report generation from topic to finalized document.
// It is single-use: create a fresh Assembler per run.
type Assembler struct {
	Searcher  Searcher
	Extractor Extractor
	Cfg       types.PipelineConfig

	// Now supplies the document timestamp. Defaults to time.Now.
	Now func() time.Time

	// Progress receives human-readable stage updates. Defaults to io.Discard.
	Progress io.Writer

	phase Phase
}

// Phase returns the assembler's current pipeline phase.
func (a *Assembler) Phase() Phase {
	if a.phase == "" {
		return PhaseInit
	}
	return a.phase
}

func (a *Assembler) setPhase(p Phase) {
	a.phase = p
	a.progressf("[%s]\n", p)
}

func (a *Assembler) progressf(format string, args ...any) {
	if a.Progress != nil {
		fmt.Fprintf(a.Progress, format, args...)
	}
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Generate runs the full pipeline for topic and returns the finalized
// document. target is the desired number of sources; the document may hold
// fewer when the archive runs out of matching records, and is still valid.
// filters are archive qf filters (see europeana.TypeFilters). Only
// authentication and quota failures return an error; every other
// degradation lands in the document's Notes.
func (a *Assembler) Generate(ctx context.Context, topic string, target int, filters []string) (*types.ReportDocument, error) {
	if topic == "" {
		return nil, fmt.Errorf("topic is empty")
	}
	if target < 1 {
		return nil, fmt.Errorf("source target must be at least 1, got %d", target)
	}

	accepted, state, notes, err := a.gather(ctx, topic, target, filters)
	if err != nil {
		a.setPhase(PhaseFailed)
		return nil, err
	}

	if len(accepted) == 0 {
		notes = append(notes, fmt.Sprintf("no sources found for %q", topic))
	}

	a.setPhase(PhaseExtracting)
	blocks := a.extractAll(ctx, accepted)

	a.setPhase(PhaseFormatting)
	bibliography := make([]types.Citation, len(blocks))
	for i := range blocks {
		blocks[i].Citation = cite.Format(blocks[i].Record)
		bibliography[i] = blocks[i].Citation
	}

	doc := &types.ReportDocument{
		Topic:        topic,
		GeneratedAt:  a.now(),
		Sources:      blocks,
		Bibliography: bibliography,
		Diversity:    diversity.Report(state),
		Notes:        notes,
		Disclaimer:   types.Disclaimer,
	}

	a.setPhase(PhaseFinalized)
	return doc, nil
}

// gather pages through search results, normalizing and admitting records
// until the target is met or pagination exhausts. Deferred records are
// promoted at the end to fill any remaining slots.
func (a *Assembler) gather(ctx context.Context, topic string, target int, filters []string) ([]types.SourceRecord, *diversity.State, []string, error) {
	analyzer := diversity.NewAnalyzer(target, a.Cfg.Diversity)
	state := diversity.NewState()

	var accepted []types.SourceRecord
	var notes []string

	maxPages := a.Cfg.Search.MaxPages
	if maxPages <= 0 {
		maxPages = 10
	}

	cursor := europeana.CursorStart
	for page := 0; page < maxPages && state.Accepted() < target && cursor != ""; page++ {
		a.setPhase(PhaseSearching)
		a.progressf("  page %d (accepted %d/%d)\n", page+1, state.Accepted(), target)

		result, err := a.Searcher.Search(ctx, topic, filters, cursor, a.Cfg.Search)
		if err != nil {
			var authErr *europeana.AuthError
			if errors.As(err, &authErr) || len(accepted) == 0 {
				return nil, nil, nil, err
			}
			// A transient failure mid-run degrades to a partial report.
			notes = append(notes, fmt.Sprintf("archive search stopped early: %v", err))
			break
		}
		cursor = result.NextCursor

		a.setPhase(PhaseAnalyzing)
		for _, raw := range result.Records {
			if state.Accepted() >= target {
				break
			}
			rec, err := normalize.Record(raw)
			if err != nil {
				state.Skipped++
				continue
			}
			if analyzer.Admit(rec, state) {
				accepted = append(accepted, rec)
			}
		}
	}

	if state.Accepted() < target {
		accepted = append(accepted, analyzer.PromoteDeferred(state)...)
	}
	if state.Accepted() < target && len(accepted) > 0 {
		notes = append(notes, fmt.Sprintf("found %d of %d requested sources before the archive ran out of results",
			state.Accepted(), target))
	}
	if state.Skipped > 0 {
		notes = append(notes, fmt.Sprintf("skipped %d malformed records", state.Skipped))
	}

	return accepted, state, notes, nil
}

// extractAll runs bounded-parallel content extraction over the accepted
// records. Block order follows admission order regardless of which
// extraction finishes first. Failures annotate the block and never drop
// the source.
func (a *Assembler) extractAll(ctx context.Context, accepted []types.SourceRecord) []types.SourceBlock {
	blocks := make([]types.SourceBlock, len(accepted))
	for i, rec := range accepted {
		blocks[i].Record = rec
	}
	if a.Extractor == nil {
		return blocks
	}

	parallelism := a.Cfg.Extraction.Parallelism
	if parallelism <= 0 {
		parallelism = 4
	}

	sem := make(chan struct{}, parallelism)
	var wg sync.WaitGroup
	for i := range blocks {
		wg.Add(1)
		sem <- struct{}{}
		go func(b *types.SourceBlock) {
			defer wg.Done()
			defer func() { <-sem }()

			text, err := a.Extractor.Extract(ctx, b.Record)
			switch {
			case err == nil:
				b.Record.Extracted = text
			case errors.Is(err, extract.ErrNoContent):
				// Nothing to extract for this record.
			default:
				b.ExtractionNote = fmt.Sprintf("text extraction failed: %v", err)
			}
		}(&blocks[i])
	}
	wg.Wait()
	return blocks
}
