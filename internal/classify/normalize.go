// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strconv"
	"strings"
	"time"

	"github.com/edunex/study-engine/pkg/types"
)

// createdAtLayouts lists the timestamp encodings the backend has been
// observed to emit. FastAPI serializes naive datetimes without a zone.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Normalize converts raw backend records into canonical resources,
// preserving order. It never drops a record: a malformed one still yields a
// best-effort text resource, so nothing the server returned is hidden from
// the user. uploader is stamped on every resource because the backend does
// not return uploader identity.
func Normalize(records []types.RawRecord, uploader string) []types.Resource {
	out := make([]types.Resource, 0, len(records))
	for _, rec := range records {
		out = append(out, NormalizeRecord(rec, uploader))
	}
	return out
}

// NormalizeRecord converts a single raw record into a canonical Resource.
func NormalizeRecord(rec types.RawRecord, uploader string) types.Resource {
	c := Classify(rec)

	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = "Untitled"
	}

	return types.Resource{
		ID:             strconv.FormatInt(rec.ID, 10),
		Title:          title,
		Category:       c.Category,
		PrimaryURL:     c.PrimaryURL,
		DisplayContent: c.DisplayContent,
		Tags:           []string{},
		Uploader:       uploader,
		UploadedAt:     parseCreatedAt(rec.CreatedAt),
		Rating:         0,
	}
}

// parseCreatedAt tries the known timestamp layouts and returns the zero
// time when none match. A missing timestamp is not an error.
func parseCreatedAt(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
