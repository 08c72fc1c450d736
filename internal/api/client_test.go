// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunex/study-engine/pkg/types"
)

// multipartFixture builds a minimal multipart body the way the ingestion
// layer does, without importing it.
func multipartFixture(t *testing.T, draft types.ResourceDraft) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", draft.Title))
	require.NoError(t, mw.WriteField("type", string(draft.Kind)))
	require.NoError(t, mw.WriteField("tags", strings.Join(draft.Tags, ",")))
	if draft.Content != "" {
		require.NoError(t, mw.WriteField("content", draft.Content))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c := New(types.ClientConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "study-engine/test"},
		BaseURL:    ts.URL,
	}, "tok_test")
	return c, ts
}

func TestListResources(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes/", r.URL.Path)
		assert.Equal(t, "Bearer tok_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 7, "title": "Notes", "file_url": null, "summary": "Key ideas on recursion", "created_at": "2026-03-14T09:26:53.589793"},
			{"id": 9, "title": "Paper", "file_url": "https://res.cloudinary.com/x/upload/v1/doc.pdf"}
		]`))
	}))

	records, err := c.ListResources(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(7), records[0].ID)
	assert.Nil(t, records[0].FileURL)
	assert.Equal(t, "Key ideas on recursion", records[0].Summary)
	require.NotNil(t, records[1].FileURL)
	assert.Equal(t, "https://res.cloudinary.com/x/upload/v1/doc.pdf", *records[1].FileURL)
}

func TestSearchResources(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "graph theory", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"id": 3, "title": "Graphs"}]`))
	}))

	records, err := c.SearchResources(context.Background(), "graph theory")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Graphs", records[0].Title)
}

func TestServerErrorDetail(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Search query must be at least 2 characters"}`))
	}))

	_, err := c.SearchResources(context.Background(), "a")
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "Search query must be at least 2 characters", se.Detail)
}

func TestNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close() // unreachable on purpose

	c := New(types.ClientConfig{
		HTTPConfig: types.HTTPConfig{Timeout: time.Second},
		BaseURL:    ts.URL,
	}, "")

	_, err := c.ListResources(context.Background())
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.NotErrorAs(t, err, new(*ServerError))
}

func TestUpload(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "TEXT", r.FormValue("type"))
		assert.Equal(t, "Study notes", r.FormValue("title"))
		assert.Equal(t, "recursion basics", r.FormValue("content"))

		json.NewEncoder(w).Encode(map[string]any{
			"id":         "42",
			"url":        "",
			"title":      "Study notes",
			"type":       "text",
			"tags":       []string{"cs"},
			"size":       "0.00 MB",
			"uploadDate": "2026-03-14T09:26:53",
			"message":    "TEXT saved successfully",
		})
	}))

	draft := types.ResourceDraft{
		Title:   "Study notes",
		Kind:    types.KindText,
		Content: "recursion basics",
		Tags:    []string{"cs"},
	}
	body, contentType := multipartFixture(t, draft)

	receipt, err := c.Upload(context.Background(), body, contentType)
	require.NoError(t, err)
	assert.Equal(t, "42", receipt.ID)
	assert.Equal(t, "TEXT saved successfully", receipt.Message)
	assert.Equal(t, []string{"cs"}, receipt.Tags)
}

func TestUploadServerErrorVerbatim(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "Upload failed: storage quota exceeded"}`))
	}))

	draft := types.ResourceDraft{Title: "t", Kind: types.KindText, Content: "c"}
	body, contentType := multipartFixture(t, draft)

	_, err := c.Upload(context.Background(), body, contentType)
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Upload failed: storage quota exceeded", se.Detail)
}

func TestSummarize(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summarize", r.URL.Path)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(9), req["resourceId"])
		w.Write([]byte(`{"summary": "Three key points."}`))
	}))

	text, err := c.Summarize(context.Background(), "", "9")
	require.NoError(t, err)
	assert.Equal(t, "Three key points.", text)
}

func TestSummarizeRejectsBadResourceID(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())

	_, err := c.Summarize(context.Background(), "", "not-a-number")
	require.Error(t, err)
	assert.NotErrorAs(t, err, new(*NetworkError))
}

func TestDeleteResource(t *testing.T) {
	var method, path string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write([]byte(`{"ok": true}`))
	}))

	require.NoError(t, c.DeleteResource(context.Background(), "12"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/notes/12", path)
}

func TestDeleteResourceNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Note not found"}`))
	}))

	err := c.DeleteResource(context.Background(), "99")
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, "Note not found", se.Detail)
}

func TestErrorsAsTaxonomy(t *testing.T) {
	// *ServerError and *NetworkError stay distinguishable through wrapping.
	var se *ServerError
	wrapped := &ServerError{Status: 500, Detail: "boom"}
	assert.True(t, errors.As(wrapped, &se))
}
