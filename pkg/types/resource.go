// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Category is the inferred display kind of a resource.
type Category string

const (
	CategoryPDF   Category = "pdf"
	CategoryDocx  Category = "docx"
	CategoryImage Category = "image"
	CategoryLink  Category = "url"
	CategoryText  Category = "text"
)

// PrimaryURLUnset is the sentinel used when a link resource carries no
// usable URL. It is never dereferenceable.
const PrimaryURLUnset = "#"

// RawRecord is a resource exactly as the backend returns it. The schema is
// server-controlled and loosely typed: file_url may be JSON null, the empty
// string, or the literal "None", all of which mean "absent". There is no
// category field; the category must be inferred client-side.
type RawRecord struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	FileURL          *string `json:"file_url"`
	Summary          string  `json:"summary"`
	ExtractedContent string  `json:"extracted_content"`
	CreatedAt        string  `json:"created_at"`
}

// Resource is the canonical, client-owned representation of a study item,
// independent of the backend wire format. The category is computed once at
// normalization time and never mutated except by full re-normalization.
type Resource struct {
	// ID is the stable identity, derived from the backend id.
	ID string `json:"id" yaml:"id"`

	// Title is the display title.
	Title string `json:"title" yaml:"title"`

	// Category is the inferred display kind.
	Category Category `json:"category" yaml:"category"`

	// PrimaryURL is a dereferenceable location, or empty when the
	// resource has none (inline text notes).
	PrimaryURL string `json:"primary_url,omitempty" yaml:"primary_url,omitempty"`

	// DisplayContent is inline textual content: the note body for text
	// resources, or a link annotation otherwise.
	DisplayContent string `json:"display_content,omitempty" yaml:"display_content,omitempty"`

	// Tags holds user labels. The backend does not populate these yet.
	Tags []string `json:"tags" yaml:"tags"`

	// Uploader is the display name of whoever added the resource. The
	// backend does not return uploader identity, so this is stamped from
	// the local profile.
	Uploader string `json:"uploader,omitempty" yaml:"uploader,omitempty"`

	// UploadedAt is when the resource was created on the server.
	UploadedAt time.Time `json:"uploaded_at" yaml:"uploaded_at"`

	// Rating is a non-negative score. Defaults to zero.
	Rating float64 `json:"rating" yaml:"rating"`
}

// DraftKind selects which payload a ResourceDraft carries.
type DraftKind string

const (
	KindText DraftKind = "TEXT"
	KindLink DraftKind = "LINK"
	KindFile DraftKind = "FILE"
)

// DraftFile is an in-memory file attached to a draft.
type DraftFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ResourceDraft is the transient state of the creation form. Exactly one of
// Content (TEXT/LINK) or File (FILE) is populated, depending on Kind.
type ResourceDraft struct {
	Title    string
	Kind     DraftKind
	Content  string
	Subject  string
	Tags     []string
	File     *DraftFile
	IsPublic bool
}

// SetKind switches the draft kind and clears whichever payload field no
// longer applies, so a draft cannot carry both a file and inline content.
func (d *ResourceDraft) SetKind(k DraftKind) {
	if k == d.Kind {
		return
	}
	d.Kind = k
	if k == KindFile {
		d.Content = ""
	} else {
		d.File = nil
	}
}

// UploadReceipt is the server's response to a successful upload. Size is a
// preformatted human-readable string (e.g. "0.52 MB"); the server does not
// return raw bytes.
type UploadReceipt struct {
	ID         string   `json:"id"`
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Kind       string   `json:"type"`
	Tags       []string `json:"tags"`
	Size       string   `json:"size"`
	UploadDate string   `json:"uploadDate"`
	Message    string   `json:"message"`
	Content    string   `json:"content"`
}

// SummaryStatus is the lifecycle state of a summary session.
type SummaryStatus string

const (
	SummaryIdle    SummaryStatus = "idle"
	SummaryLoading SummaryStatus = "loading"
	SummarySuccess SummaryStatus = "success"
	SummaryFailed  SummaryStatus = "failed"
)

// SummarySession is the transient request/response bundle tracking one AI
// summarization for one resource. At most one session is active at a time;
// opening a session for a different resource supersedes the previous one.
type SummarySession struct {
	ResourceID   string        `json:"resource_id"`
	Status       SummaryStatus `json:"status"`
	Text         string        `json:"text,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}
