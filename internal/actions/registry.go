package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Handler executes one named operation against a snapshot context and
// returns the successor context plus a structured result.
type Handler func(ctx context.Context, ec Context, raw json.RawMessage) (Context, Result)

// Registry maps stable operation names to handlers. Only batch operations
// are registered (and advertised); their single-item building blocks are
// package-private functions the batch loops chain a context through.
type Registry struct {
	logger   *slog.Logger
	handlers map[string]Handler
	specs    []Spec
}

func NewRegistry(logger *slog.Logger) *Registry {
	r := &Registry{
		logger:   logger,
		handlers: make(map[string]Handler),
	}
	r.register(insertClipsSpec, r.insertClips)
	r.register(deleteRangesSpec, r.deleteRanges)
	r.register(addTextsSpec, r.addTexts)
	r.register(suggestClipsSpec, r.suggestClips)
	r.register(confirmSuggestionsSpec, r.confirmSuggestions)
	r.register(cancelSuggestionsSpec, r.cancelSuggestions)
	return r
}

func (r *Registry) register(spec Spec, h Handler) {
	r.handlers[spec.Name] = h
	r.specs = append(r.specs, spec)
}

// Catalog returns the operation schemas advertised to the remote agent when
// a channel connects.
func (r *Registry) Catalog() []Spec {
	out := make([]Spec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Execute dispatches one operation by name. Unknown names and handler panics
// both surface as structured failures with the input context unchanged;
// nothing thrown inside a handler may corrupt dispatch bookkeeping.
func (r *Registry) Execute(ctx context.Context, name string, params json.RawMessage, ec Context) (out Context, res Result) {
	h, ok := r.handlers[name]
	if !ok {
		return ec, failure(fmt.Sprintf("Unknown action: %s", name))
	}

	defer func() {
		if p := recover(); p != nil {
			if r.logger != nil {
				r.logger.Error("action handler panicked", "action", name, "panic", p)
			}
			out = ec
			res = failure(fmt.Sprintf("action %s failed: %v", name, p))
		}
	}()

	out, res = h(ctx, ec, params)
	return out, res
}
