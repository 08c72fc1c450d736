// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary drives AI summarization sessions. At most one session
// is active at a time; opening a session for a different resource
// supersedes the previous one, and a late response for a superseded
// session is discarded rather than committed against the wrong resource.
package summary

import (
	"context"
	"errors"
	"sync"

	"github.com/edunex/study-engine/internal/api"
	"github.com/edunex/study-engine/pkg/types"
)

// genericFailure is shown when a failed summarization carries no detail
// of its own.
const genericFailure = "summary request failed"

// Backend generates a summary for a piece of text, optionally anchored
// to a stored resource so the server can pull its extracted content.
// *api.Client satisfies this.
type Backend interface {
	Summarize(ctx context.Context, text, resourceID string) (string, error)
}

// Orchestrator tracks the single active summary session and guards
// state commits by resource identity. Responses that arrive for a
// resource other than the active one are dropped.
type Orchestrator struct {
	mu      sync.Mutex
	backend Backend
	active  *types.SummarySession
}

// New returns an orchestrator with no active session.
func New(backend Backend) *Orchestrator {
	return &Orchestrator{backend: backend}
}

// Open starts a session for resourceID in the loading state. Any
// in-flight session for another resource is abandoned: its eventual
// resolution will no longer match the active identity and is discarded.
func (o *Orchestrator) Open(resourceID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = &types.SummarySession{
		ResourceID: resourceID,
		Status:     types.SummaryLoading,
	}
}

// Resolve commits the outcome of a summarize call, but only when the
// session for resourceID is still the active one. A stale resolution is
// silently dropped; the invariant is that a summary is never displayed
// against a resource it was not requested for.
func (o *Orchestrator) Resolve(resourceID, text string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.active == nil || o.active.ResourceID != resourceID {
		return
	}
	if err != nil {
		o.active.Status = types.SummaryFailed
		o.active.ErrorMessage = failureMessage(err)
		return
	}
	o.active.Status = types.SummarySuccess
	o.active.Text = text
}

// Request opens a session for resourceID, issues the summarize call and
// resolves the session with its outcome. The call error is returned so
// callers can surface it directly; the session reflects it either way.
func (o *Orchestrator) Request(ctx context.Context, resourceID, text string) error {
	o.Open(resourceID)
	result, err := o.backend.Summarize(ctx, text, resourceID)
	o.Resolve(resourceID, result, err)
	return err
}

// Session returns a snapshot of the active session, or an idle zero
// session when none is open.
func (o *Orchestrator) Session() types.SummarySession {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.active == nil {
		return types.SummarySession{Status: types.SummaryIdle}
	}
	return *o.active
}

// Close discards the active session. Summaries are not cached across
// views; reopening re-requests.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active = nil
}

// failureMessage prefers the server's own detail and falls back to a
// generic message when the failure carries none.
func failureMessage(err error) string {
	var srvErr *api.ServerError
	if errors.As(err, &srvErr) && srvErr.Detail != "" {
		return srvErr.Detail
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericFailure
}
