// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/heritage-reporter/pkg/types"
)

func TestFormatFullRecord(t *testing.T) {
	rec := types.SourceRecord{
		ID:       "/9200365/BibliographicResource_1",
		Title:    "Carte de France",
		Creator:  "Cassini de Thury",
		Date:     "1744",
		Type:     types.TypeImage,
		Provider: "The European Library",
		ShownAt:  "http://gallica.bnf.fr/ark:/12148/btv1b1",
		Rights:   "http://creativecommons.org/publicdomain/mark/1.0/",
	}

	c := Format(rec)
	want := "Cassini de Thury. (1744). Carte de France [Image]. The European Library. " +
		"Retrieved from http://gallica.bnf.fr/ark:/12148/btv1b1"
	if c.Text != want {
		t.Errorf("Text = %q\nwant   %q", c.Text, want)
	}
	if c.Rights != rec.Rights {
		t.Errorf("Rights = %q", c.Rights)
	}
	if c.URL != rec.ShownAt {
		t.Errorf("URL = %q", c.URL)
	}
}

func TestFormatTextRecordHasNoKindLabel(t *testing.T) {
	c := Format(types.SourceRecord{
		ID: "/x/1", Title: "Chronique", Type: types.TypeText, Provider: "BnF",
	})
	if got := c.Text; got != "Unknown creator. (n.d.). Chronique. BnF. Retrieved from https://www.europeana.eu/item/x/1" {
		t.Errorf("Text = %q", got)
	}
}

func TestFormatMissingRightsUsesMarker(t *testing.T) {
	c := Format(types.SourceRecord{ID: "/x/2", Title: "Untitled scan"})
	if c.Rights != RightsUnknown {
		t.Errorf("Rights = %q, want %q", c.Rights, RightsUnknown)
	}
}

// Format must be idempotent: two calls on the same record yield identical
// citations.
func TestFormatIdempotent(t *testing.T) {
	rec := types.SourceRecord{
		ID:       "/x/3",
		Title:    "Stadsgezicht",
		Type:     types.TypeImage,
		Provider: "Rijksmuseum",
	}
	a := Format(rec)
	b := Format(rec)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Format not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestFormatKindLabels(t *testing.T) {
	tests := []struct {
		typ  types.RecordType
		want string
	}{
		{types.TypeImage, "[Image]"},
		{types.TypeVideo, "[Video]"},
		{types.TypeSound, "[Audio]"},
		{types.Type3D, "[3D object]"},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			c := Format(types.SourceRecord{ID: "/x/4", Title: "T", Type: tt.typ})
			if !strings.Contains(c.Text, tt.want) {
				t.Errorf("Text = %q, want label %q", c.Text, tt.want)
			}
		})
	}
}
