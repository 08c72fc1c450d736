// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest builds and submits resource drafts. A draft is validated
// locally, sent as a multipart payload, shown optimistically in the list,
// and then reconciled against an authoritative refetch.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"github.com/edunex/study-engine/internal/classify"
	"github.com/edunex/study-engine/internal/library"
	"github.com/edunex/study-engine/pkg/types"
)

// MaxFileSize is the local upload ceiling. Larger files are rejected
// before any network traffic.
const MaxFileSize = 10 << 20 // 10 MiB

// Uploader is the submission surface the controller consumes.
type Uploader interface {
	Upload(ctx context.Context, body io.Reader, contentType string) (types.UploadReceipt, error)
}

// Controller drives the submit flow against the shared resource list.
type Controller struct {
	api      Uploader
	library  *library.Controller
	uploader string // profile name stamped on provisional resources
}

// NewController builds a Controller. lib receives the optimistic insert
// and the authoritative refetch.
func NewController(api Uploader, lib *library.Controller, uploader string) *Controller {
	return &Controller{api: api, library: lib, uploader: uploader}
}

// Submit validates the draft, uploads it, optimistically prepends the new
// resource to the list, and refetches the authoritative list in the
// background sense: the optimistic entry is already visible before the
// refetch resolves, and a failed refetch retains it rather than rolling it
// back. The returned Resource is the provisional entry.
//
// Validation failures are *ValidationError and never reach the network.
// Upload failures leave the list untouched; the caller keeps the draft so
// the user can retry without re-entering anything.
func (c *Controller) Submit(ctx context.Context, draft types.ResourceDraft, w io.Writer) (types.Resource, error) {
	if err := Validate(draft); err != nil {
		return types.Resource{}, err
	}

	body, contentType, err := BuildPayload(draft)
	if err != nil {
		return types.Resource{}, err
	}

	receipt, err := c.api.Upload(ctx, body, contentType)
	if err != nil {
		return types.Resource{}, err
	}

	provisional := ProvisionalResource(receipt, draft, c.uploader)
	c.library.Prepend(provisional)

	// Reconcile: replace the optimistic entry with the server's view.
	// A failed refetch keeps the entry the user just created visible.
	if _, err := c.library.Load(ctx); err != nil {
		fmt.Fprintf(w, "warning: could not refresh resource list: %v\n", err)
	}
	return provisional, nil
}

// BuildPayload encodes a validated draft as the multipart form the upload
// endpoint expects: title, type, subject, is_public, comma-joined tags,
// and exactly one of file or content.
func BuildPayload(draft types.ResourceDraft) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":     strings.TrimSpace(draft.Title),
		"type":      string(draft.Kind),
		"subject":   draft.Subject,
		"tags":      strings.Join(draft.Tags, ","),
		"is_public": fmt.Sprintf("%t", draft.IsPublic),
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", name, err)
		}
	}

	if draft.Kind == types.KindFile {
		fw, err := mw.CreateFormFile("file", draft.File.Name)
		if err != nil {
			return nil, "", fmt.Errorf("creating file part: %w", err)
		}
		if _, err := fw.Write(draft.File.Data); err != nil {
			return nil, "", fmt.Errorf("writing file part: %w", err)
		}
	} else {
		if err := mw.WriteField("content", draft.Content); err != nil {
			return nil, "", fmt.Errorf("writing content field: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart payload: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

// ProvisionalResource builds the optimistic list entry from the upload
// receipt and the draft it confirmed. The server response carries enough
// to classify the new resource the same way a fetched record would be.
func ProvisionalResource(receipt types.UploadReceipt, draft types.ResourceDraft, uploader string) types.Resource {
	// Reconstruct a raw record so classification happens in exactly one
	// place. For TEXT, the content rides in summary; for LINK, the URL
	// does, mirroring how the server stores the note.
	rec := types.RawRecord{
		Title:     receipt.Title,
		Summary:   draft.Content,
		CreatedAt: receipt.UploadDate,
	}
	if receipt.URL != "" && receipt.URL != types.PrimaryURLUnset {
		u := receipt.URL
		rec.FileURL = &u
	}

	res := classify.NormalizeRecord(rec, uploader)

	res.ID = receipt.ID
	if res.ID == "" {
		// The entry needs a stable identity before the refetch brings
		// the real one.
		res.ID = uuid.NewString()
	}
	if len(receipt.Tags) > 0 {
		res.Tags = receipt.Tags
	} else if len(draft.Tags) > 0 {
		res.Tags = draft.Tags
	}
	if res.Title == "Untitled" && strings.TrimSpace(draft.Title) != "" {
		res.Title = strings.TrimSpace(draft.Title)
	}
	return res
}

// DefaultTitle derives a title for a draft that lacks one: the file's name
// without extension, the link's host, or "Untitled". The server does the
// same when given no title; deriving it client-side keeps the optimistic
// entry consistent with what the refetch will return.
func DefaultTitle(draft types.ResourceDraft) string {
	if t := strings.TrimSpace(draft.Title); t != "" {
		return t
	}
	switch draft.Kind {
	case types.KindFile:
		if draft.File != nil && draft.File.Name != "" {
			name := draft.File.Name
			if i := strings.LastIndex(name, "."); i > 0 {
				name = name[:i]
			}
			return name
		}
	case types.KindLink:
		if host := linkHost(draft.Content); host != "" {
			return host
		}
		return "Untitled Link"
	}
	return "Untitled"
}

func linkHost(rawURL string) string {
	rest, ok := strings.CutPrefix(rawURL, "https://")
	if !ok {
		rest, ok = strings.CutPrefix(rawURL, "http://")
	}
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
