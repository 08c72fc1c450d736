// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify infers the display category of backend resource records.
// The backend stores every resource in one loosely-typed row — a nullable
// file URL, an optional summary, an optional extracted-content field — and
// returns no category of its own, so the client derives one here.
package classify

import (
	"net/url"
	"strings"

	"github.com/edunex/study-engine/pkg/types"
)

// Classification is the result of category inference for one record.
type Classification struct {
	Category       types.Category
	PrimaryURL     string
	DisplayContent string
}

// Extension sets for category inference. Matching is case-insensitive and
// ignores any query string or fragment on the URL.
var (
	pdfExts   = []string{".pdf"}
	docxExts  = []string{".docx", ".doc"}
	imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
)

// Markers that identify a hosted file rather than an external link: the
// server's local upload path, or its cloud storage host.
const uploadsPathMarker = "/uploads/"

var storageHosts = []string{"res.cloudinary.com", "cloudinary.com"}

// Classify maps a raw backend record onto exactly one display category,
// together with the dereferenceable URL (if any) and the inline content to
// show. It is total: every input resolves to a category, malformed or not.
//
// The backend emits JSON null, the empty string, and the literal string
// "None" interchangeably for an absent file URL. That inconsistency is a
// permanent property of the wire format, so all three are treated as absent
// here rather than rejected.
func Classify(rec types.RawRecord) Classification {
	fileURL := presentURL(rec.FileURL)

	// No file URL: an inline text note. An empty record is still a
	// well-formed placeholder.
	if fileURL == "" {
		return Classification{
			Category:       types.CategoryText,
			DisplayContent: displayContent(rec),
		}
	}

	if strings.HasPrefix(fileURL, "http://") || strings.HasPrefix(fileURL, "https://") {
		if cat, ok := extensionCategory(fileURL); ok {
			return Classification{
				Category:       cat,
				PrimaryURL:     fileURL,
				DisplayContent: displayContent(rec),
			}
		}
		if !isHostedFile(fileURL) {
			// An absolute URL outside the server's storage is an
			// external link the user saved.
			return Classification{
				Category:       types.CategoryLink,
				PrimaryURL:     linkPrimaryURL(fileURL, rec.Summary),
				DisplayContent: displayContent(rec),
			}
		}
		// A hosted file whose extension matched nothing above: fall
		// back to text, keeping the URL for the viewer to offer.
		return Classification{
			Category:       types.CategoryText,
			PrimaryURL:     fileURL,
			DisplayContent: displayContent(rec),
		}
	}

	// Non-absolute, non-empty file URL (a bare path or filename): infer
	// from the extension alone.
	if cat, ok := extensionCategory(fileURL); ok {
		return Classification{
			Category:       cat,
			PrimaryURL:     fileURL,
			DisplayContent: displayContent(rec),
		}
	}
	return Classification{
		Category:       types.CategoryText,
		PrimaryURL:     fileURL,
		DisplayContent: displayContent(rec),
	}
}

// linkPrimaryURL picks the dereferenceable URL for a link resource. The
// file URL wins when usable; otherwise the summary (the server mirrors link
// targets there); otherwise the non-dereferenceable unset sentinel.
func linkPrimaryURL(fileURL, summary string) string {
	if fileURL != "" && fileURL != "None" {
		return fileURL
	}
	if s := strings.TrimSpace(summary); s != "" {
		return s
	}
	return types.PrimaryURLUnset
}

// presentURL collapses the backend's three absent-value encodings (null,
// "", "None"/"null") into the empty string.
func presentURL(u *string) string {
	if u == nil {
		return ""
	}
	s := strings.TrimSpace(*u)
	if s == "None" || s == "null" {
		return ""
	}
	return s
}

// displayContent prefers extracted file content, then the summary field.
func displayContent(rec types.RawRecord) string {
	if rec.ExtractedContent != "" {
		return rec.ExtractedContent
	}
	return rec.Summary
}

// extensionCategory infers a category from the file extension of rawURL,
// which may be an absolute URL, a bare path, or a filename.
func extensionCategory(rawURL string) (types.Category, bool) {
	p := pathOf(rawURL)
	switch {
	case hasAnySuffix(p, pdfExts):
		return types.CategoryPDF, true
	case hasAnySuffix(p, docxExts):
		return types.CategoryDocx, true
	case hasAnySuffix(p, imageExts):
		return types.CategoryImage, true
	}
	return "", false
}

// isHostedFile reports whether the URL points into the server's own file
// storage (local uploads directory or cloud storage host).
func isHostedFile(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.Contains(strings.ToLower(rawURL), uploadsPathMarker)
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range storageHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(u.Path), uploadsPathMarker)
}

// pathOf returns the lowercased path portion of rawURL with any query
// string or fragment removed.
func pathOf(rawURL string) string {
	s := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		s = u.Path
	} else {
		if i := strings.IndexAny(s, "?#"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.ToLower(s)
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
