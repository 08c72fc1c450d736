// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api is the HTTP client for the Edunex study-resource service.
// It covers the narrow collaborator surface the client core consumes:
// listing, searching, uploading, summarizing, and deleting resources.
// Failures are typed: *NetworkError when no response arrived, *ServerError
// when the server answered with a failure status.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/edunex/study-engine/internal/httputil"
	"github.com/edunex/study-engine/pkg/types"
)

// errorBodyLimit bounds how much of an error response body is read when it
// is not the usual {"detail": ...} shape.
const errorBodyLimit = 4 << 10

// Client talks to one Edunex backend.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client
}

// New builds a Client from config. token may be empty; the backend allows
// anonymous access in development.
func New(cfg types.ClientConfig, token string) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		baseURL:   base,
		token:     token,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

// ListResources fetches the full resource list, newest first.
func (c *Client) ListResources(ctx context.Context) ([]types.RawRecord, error) {
	var records []types.RawRecord
	if err := c.getJSON(ctx, "/notes/", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SearchResources fetches resources matching query. The server requires at
// least two characters; callers below that threshold should list instead.
func (c *Client) SearchResources(ctx context.Context, query string) ([]types.RawRecord, error) {
	params := url.Values{"q": {query}}
	var records []types.RawRecord
	if err := c.getJSON(ctx, "/search", params, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Upload submits a multipart resource payload built by the ingestion layer
// and returns the server's receipt.
func (c *Client) Upload(ctx context.Context, body io.Reader, contentType string) (types.UploadReceipt, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return types.UploadReceipt{}, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return types.UploadReceipt{}, &NetworkError{Op: "upload", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.UploadReceipt{}, serverError(resp)
	}

	var receipt types.UploadReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return types.UploadReceipt{}, fmt.Errorf("parsing upload response: %w", err)
	}
	return receipt, nil
}

// summarizeRequest is the /summarize request body. ResourceID is the
// backend's integer id; when set, the server pulls the text itself from the
// stored record.
type summarizeRequest struct {
	Text       string `json:"text,omitempty"`
	ResourceID int64  `json:"resourceId,omitempty"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Summarize requests an AI summary. Exactly one of text or resourceID
// should be provided; with a resourceID the server resolves the content
// (extracted text, stored summary, or the file itself) on its side.
func (c *Client) Summarize(ctx context.Context, text, resourceID string) (string, error) {
	reqBody := summarizeRequest{Text: text}
	if resourceID != "" {
		id, err := strconv.ParseInt(resourceID, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid resource id %q: %w", resourceID, err)
		}
		reqBody.ResourceID = id
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding summarize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/summarize", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating summarize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return "", &NetworkError{Op: "summarize", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", serverError(resp)
	}

	var sr summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("parsing summarize response: %w", err)
	}
	return sr.Summary, nil
}

// DeleteResource removes a resource by id.
func (c *Client) DeleteResource(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("creating delete request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: "delete", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return &NetworkError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// serverError builds a *ServerError from a failure response, pulling the
// detail string out of the backend's {"detail": ...} error shape when
// possible and falling back to the raw body otherwise.
func serverError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

	var fe struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &fe); err == nil && fe.Detail != "" {
		return &ServerError{Status: resp.StatusCode, Detail: fe.Detail}
	}
	return &ServerError{Status: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
}
