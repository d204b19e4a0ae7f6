// Package actions is the command dispatch layer: a registry of named editing
// operations that an external agent can invoke over the message channel. Each
// handler runs against an explicit snapshot context and returns a structured
// result; batch operations thread the mutated context through their loop, so
// no handler ever touches shared state.
package actions

import (
	"context"

	"github.com/cutline/cutline-agent/internal/timeline"
)

// Asset is the resolved form of a source-media reference: what the dispatch
// layer needs to know about a library entry to place it on the timeline.
type Asset struct {
	Ref      string
	Kind     timeline.ClipType
	Duration float64
}

// MediaResolver looks a source reference up in the media library. Resolution
// is the only asynchronous boundary inside an operation; everything after it
// works on the snapshot captured before the call.
type MediaResolver interface {
	Resolve(ctx context.Context, ref string) (*Asset, error)
}

// Context is the per-call snapshot a handler operates on. Handlers receive a
// Context and return the successor Context; the caller owns applying the
// final one back to the live document.
type Context struct {
	Clips    timeline.Clips
	Playhead float64
	Resolver MediaResolver
}

// Result is the uniform success/failure shape every operation produces.
// Failures are data: nothing is allowed to escape a handler as a panic or
// error value.
type Result struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

func success(data map[string]any) Result {
	return Result{Success: true, Data: data}
}

// ItemResult is one entry of a batch operation's per-item report, in input
// order.
type ItemResult struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}
