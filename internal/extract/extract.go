// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls bounded text content from documents linked by
// archive records. Extraction is best-effort and explicitly partial: a
// fixed page cap and a per-document timeout bound its cost, and any failure
// leaves the record without extracted text instead of failing the run.
//
// See docs/ARCHITECTURE.md § Content Extractor.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/pdiddy/heritage-reporter/pkg/types"
)

// ErrNoContent reports that a record carries no extractable document: it is
// not a TEXT record, or none of its media links is document-shaped.
var ErrNoContent = errors.New("no document content to extract")

// maxDocumentBytes caps how much of a linked document is downloaded.
const maxDocumentBytes = 32 << 20

// Error reports a failed extraction attempt. It never propagates past the
// record: callers annotate the source block and continue.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Extractor fetches linked documents and extracts page-capped text.
type Extractor struct {
	HTTP *http.Client
	Cfg  types.ExtractionConfig
}

// DocumentLink returns the first media link that looks like a text
// document, by MIME type or file extension, and whether one exists.
func DocumentLink(rec types.SourceRecord) (types.MediaLink, bool) {
	for _, link := range rec.MediaLinks {
		if link.MimeType == "application/pdf" || strings.HasSuffix(strings.ToLower(stripQuery(link.URL)), ".pdf") {
			return link, true
		}
	}
	return types.MediaLink{}, false
}

func stripQuery(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		return url[:idx]
	}
	return url
}

// Extract fetches the record's linked document and returns its text, capped
// at Cfg.MaxPDFPages pages. It returns ErrNoContent when the record has
// nothing to extract, and *Error for transport failures, unsupported or
// corrupted documents, timeouts, and documents with zero extractable pages.
// No retries happen here; rate-limit retry policy lives in the transport.
func (e *Extractor) Extract(ctx context.Context, rec types.SourceRecord) (*types.ExtractedText, error) {
	if rec.Type != types.TypeText {
		return nil, ErrNoContent
	}
	link, ok := DocumentLink(rec)
	if !ok {
		return nil, ErrNoContent
	}

	timeout := e.Cfg.DocTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := e.fetch(ctx, link.URL)
	if err != nil {
		return nil, &Error{URL: link.URL, Err: err}
	}

	maxPages := e.Cfg.MaxPDFPages
	if maxPages <= 0 {
		maxPages = 3
	}

	text, err := extractPDFText(data, maxPages)
	if err != nil {
		return nil, &Error{URL: link.URL, Err: err}
	}
	text.SourceURL = link.URL
	return text, nil
}

func (e *Extractor) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", e.Cfg.UserAgent)

	resp, err := e.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document fetch returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("reading document body: %w", err)
	}
	return data, nil
}

// extractPDFText parses the document and reads up to maxPages pages of
// plain text. Pages that yield no text are skipped but still count as
// scanned.
func extractPDFText(data []byte, maxPages int) (result *types.ExtractedText, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("parsing document: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	total := reader.NumPage()
	scan := pageCap(total, maxPages)

	var pages []types.PageText
	for i := 1; i <= scan; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		pages = append(pages, types.PageText{Number: i, Content: content})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("document has no extractable text in the first %d of %d pages", scan, total)
	}

	return &types.ExtractedText{
		Pages:        pages,
		PagesScanned: scan,
		TotalPages:   total,
		Partial:      total > scan,
	}, nil
}

// pageCap bounds how many pages one document contributes.
func pageCap(total, maxPages int) int {
	if total > maxPages {
		return maxPages
	}
	return total
}
