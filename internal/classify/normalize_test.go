// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"
	"time"

	"github.com/edunex/study-engine/pkg/types"
)

func TestNormalizePreservesOrder(t *testing.T) {
	records := []types.RawRecord{
		{ID: 3, Title: "c"},
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
	}

	got := Normalize(records, "dana")
	if len(got) != 3 {
		t.Fatalf("Normalize() returned %d resources, want 3", len(got))
	}
	for i, wantID := range []string{"3", "1", "2"} {
		if got[i].ID != wantID {
			t.Errorf("resource[%d].ID = %q, want %q", i, got[i].ID, wantID)
		}
	}
}

func TestNormalizeRecordDefaults(t *testing.T) {
	rec := types.RawRecord{
		ID:        12,
		Title:     "  Algorithms  ",
		FileURL:   strPtr("https://res.cloudinary.com/x/upload/v1/algo.pdf"),
		CreatedAt: "2026-03-14T09:26:53.589793",
	}

	res := NormalizeRecord(rec, "dana")

	if res.ID != "12" {
		t.Errorf("ID = %q, want %q", res.ID, "12")
	}
	if res.Title != "Algorithms" {
		t.Errorf("Title = %q, want trimmed title", res.Title)
	}
	if res.Category != types.CategoryPDF {
		t.Errorf("Category = %q, want pdf", res.Category)
	}
	if res.Uploader != "dana" {
		t.Errorf("Uploader = %q, want dana", res.Uploader)
	}
	if res.Rating != 0 {
		t.Errorf("Rating = %v, want 0", res.Rating)
	}
	if res.Tags == nil || len(res.Tags) != 0 {
		t.Errorf("Tags = %v, want empty non-nil slice", res.Tags)
	}
	want := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	if !res.UploadedAt.Equal(want) {
		t.Errorf("UploadedAt = %v, want %v", res.UploadedAt, want)
	}
}

func TestNormalizeRecordMalformed(t *testing.T) {
	// A record with nothing usable still yields a well-formed text
	// resource instead of being dropped.
	res := NormalizeRecord(types.RawRecord{}, "")

	if res.Category != types.CategoryText {
		t.Errorf("Category = %q, want text", res.Category)
	}
	if res.Title != "Untitled" {
		t.Errorf("Title = %q, want Untitled", res.Title)
	}
	if !res.UploadedAt.IsZero() {
		t.Errorf("UploadedAt = %v, want zero time", res.UploadedAt)
	}
}

func TestParseCreatedAt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{"rfc3339", "2026-03-14T09:26:53Z", false},
		{"naive with micros", "2026-03-14T09:26:53.589793", false},
		{"naive without fraction", "2026-03-14T09:26:53", false},
		{"empty", "", true},
		{"garbage", "yesterday", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCreatedAt(tt.input)
			if got.IsZero() != tt.zero {
				t.Errorf("parseCreatedAt(%q).IsZero() = %v, want %v", tt.input, got.IsZero(), tt.zero)
			}
		})
	}
}
