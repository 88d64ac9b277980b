// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/heritage-reporter/pkg/types"
)

func sampleDoc() *types.ReportDocument {
	return &types.ReportDocument{
		Topic:       "delft pottery",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Sources: []types.SourceBlock{
			{
				Record: types.SourceRecord{
					ID:       "/a/1",
					Title:    "Delftware plate",
					Type:     types.TypeImage,
					Provider: "Rijksmuseum",
					Country:  "Netherlands",
				},
				Citation: types.Citation{
					Text:   "Unknown creator. (n.d.). Delftware plate [Image]. Rijksmuseum. Retrieved from https://www.europeana.eu/item/a/1",
					Rights: "rights unknown",
					URL:    "https://www.europeana.eu/item/a/1",
				},
			},
		},
		Bibliography: []types.Citation{{Text: "Unknown creator. (n.d.). Delftware plate [Image]. Rijksmuseum. Retrieved from https://www.europeana.eu/item/a/1"}},
		Diversity: types.DiversitySummary{
			Accepted:  1,
			Providers: map[string]float64{"Rijksmuseum": 100},
			Types:     map[string]float64{"IMAGE": 100},
			Countries: map[string]float64{"Netherlands": 100},
		},
		Notes:      []string{"found 1 of 3 requested sources before the archive ran out of results"},
		Disclaimer: types.Disclaimer,
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleDoc(), &buf)
	out := buf.String()

	for _, want := range []string{"Delftware plate", "Rijksmuseum", "1 sources", "note: found 1 of 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(&types.ReportDocument{Notes: []string{"no sources found for \"x\""}}, &buf)

	if !strings.Contains(buf.String(), "No sources found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatMarkdown(t *testing.T) {
	var buf bytes.Buffer
	FormatMarkdown(sampleDoc(), &buf)
	out := buf.String()

	for _, want := range []string{
		"# Cultural Heritage Report: delft pottery",
		"Generated: 2026-03-01 12:00 UTC",
		"### 1. Delftware plate",
		"## Bibliography",
		"- Providers: Rijksmuseum 100.0%",
		"## Notes",
		"## Disclaimer",
		types.Disclaimer,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestFormatJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(sampleDoc(), &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var decoded types.ReportDocument
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if decoded.Topic != "delft pottery" || len(decoded.Sources) != 1 {
		t.Errorf("decoded = topic %q, %d sources", decoded.Topic, len(decoded.Sources))
	}
}
