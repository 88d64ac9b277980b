// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts raw archive records into canonical
// SourceRecords. Archive record schemas vary by media type, and most fields
// arrive either as a scalar or as an ordered list, so every optional field
// degrades to empty rather than failing.
//
// See docs/ARCHITECTURE.md § Record Normalizer.
package normalize

import (
	"fmt"
	"path"
	"strings"

	"github.com/pdiddy/heritage-reporter/pkg/types"
)

// MalformedRecordError reports a raw record that cannot become a
// SourceRecord. Only a missing or empty mandatory ID field is malformed;
// callers skip the record and continue the run.
type MalformedRecordError struct {
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return "malformed record: " + e.Reason
}

// mimeByExt maps common media file extensions to MIME types, for links
// whose metadata carries no explicit type.
var mimeByExt = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mov":  "video/quicktime",
}

// Record converts one raw archive record into a SourceRecord. It is a pure
// function: identical input maps yield identical records. It fails only
// with *MalformedRecordError when the mandatory id field is absent or empty.
func Record(raw map[string]any) (types.SourceRecord, error) {
	id := firstString(raw["id"])
	if strings.TrimSpace(id) == "" {
		return types.SourceRecord{}, &MalformedRecordError{Reason: "missing id field"}
	}

	rec := types.SourceRecord{
		ID:           id,
		Title:        firstString(raw["title"]),
		Creator:      firstString(raw["dcCreator"]),
		Description:  firstString(raw["dcDescription"]),
		Date:         firstString(raw["year"]),
		Type:         types.ParseRecordType(firstString(raw["type"])),
		Provider:     firstString(raw["provider"]),
		DataProvider: firstString(raw["dataProvider"]),
		Country:      firstString(raw["country"]),
		Language:     firstString(raw["language"]),
		ShownAt:      firstString(raw["edmIsShownAt"]),
		Rights:       firstString(raw["rights"]),
	}
	if rec.Date == "" {
		rec.Date = firstString(raw["dcDate"])
	}

	rec.MediaLinks = mediaLinks(raw)

	return rec, nil
}

// mediaLinks collects preview and full-media URIs from the fields the
// archive may populate, in a fixed field order, deduplicated by URL.
func mediaLinks(raw map[string]any) []types.MediaLink {
	var links []types.MediaLink
	seen := make(map[string]bool)

	for _, field := range []string{"edmIsShownBy", "edmObject", "edmPreview"} {
		for _, url := range stringList(raw[field]) {
			if url == "" || seen[url] {
				continue
			}
			seen[url] = true
			links = append(links, types.MediaLink{URL: url, MimeType: guessMime(url)})
		}
	}
	return links
}

// guessMime returns the MIME type implied by the URL's file extension, or
// application/octet-stream when the extension is unknown.
func guessMime(url string) string {
	ext := strings.ToLower(path.Ext(stripQuery(url)))
	if mime, ok := mimeByExt[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

func stripQuery(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		return url[:idx]
	}
	return url
}

// firstString extracts the first string value from a field that may be a
// scalar, an ordered list, or absent.
func firstString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	case []any:
		for _, item := range val {
			if s := firstString(item); s != "" {
				return s
			}
		}
		return ""
	case float64:
		// JSON numbers land as float64; years are the only numeric field.
		return fmt.Sprintf("%.0f", val)
	case int:
		return fmt.Sprintf("%d", val)
	default:
		return ""
	}
}

// stringList extracts all string values from a scalar-or-list field,
// preserving order.
func stringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []string:
		return val
	case []any:
		var out []string
		for _, item := range val {
			if s := firstString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
