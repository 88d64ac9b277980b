// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite produces deterministic bibliographic entries for archive
// sources. Formatting is a pure function of the record: no timestamps, no
// randomness, identical output for identical input on every invocation.
//
// See docs/ARCHITECTURE.md § Citation Formatter.
package cite

import (
	"fmt"

	"github.com/pdiddy/heritage-reporter/pkg/types"
)

// RightsUnknown is substituted when a record carries no rights statement,
// so every citation has uniform shape.
const RightsUnknown = "rights unknown"

// itemBase is the archive's public landing page prefix, used when a record
// has no isShownAt URL. Record IDs begin with a slash.
const itemBase = "https://www.europeana.eu/item"

// kindLabels annotate non-textual sources in the reference line.
var kindLabels = map[types.RecordType]string{
	types.TypeImage: "[Image]",
	types.TypeVideo: "[Video]",
	types.TypeSound: "[Audio]",
	types.Type3D:    "[3D object]",
}

// Format produces the Citation for a record.
func Format(rec types.SourceRecord) types.Citation {
	creator := orDefault(rec.Creator, "Unknown creator")
	date := orDefault(rec.Date, "n.d.")
	title := orDefault(rec.Title, "Untitled")
	provider := orDefault(rec.Provider, orDefault(rec.DataProvider, "Unknown provider"))
	url := rec.ShownAt
	if url == "" {
		url = itemBase + rec.ID
	}

	text := fmt.Sprintf("%s. (%s). %s", creator, date, title)
	if label, ok := kindLabels[rec.Type]; ok {
		text += " " + label
	}
	text += fmt.Sprintf(". %s. Retrieved from %s", provider, url)

	return types.Citation{
		Text:   text,
		Rights: orDefault(rec.Rights, RightsUnknown),
		URL:    url,
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
