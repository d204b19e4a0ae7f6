package actions

import "github.com/cutline/cutline-agent/internal/timeline"

// The closed set of typed request variants, one per operation. Inbound
// parameter objects are decoded into these and validated at the dispatch
// boundary before any algorithm code runs.

// InsertItem is one (sourceRef, sourceIn, sourceOut) triple of a sequential
// insertion.
type InsertItem struct {
	SourceRef string  `json:"source_ref"`
	SourceIn  float64 `json:"source_in"`
	SourceOut float64 `json:"source_out"`
}

// InsertClipsRequest places clips back-to-back starting at a timeline
// position.
type InsertClipsRequest struct {
	At    float64      `json:"at"`
	Clips []InsertItem `json:"clips"`
}

// DeleteRangesRequest removes one or more time ranges with ripple.
type DeleteRangesRequest struct {
	Ranges []timeline.TimeRange `json:"ranges"`
}

// TextItem is one overlay of a multi-text addition.
type TextItem struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// AddTextsRequest adds text overlays at explicit positions.
type AddTextsRequest struct {
	Texts []TextItem `json:"texts"`
}

// SuggestItem is one provisional b-roll placement.
type SuggestItem struct {
	SuggestionID string  `json:"suggestion_id"`
	SourceRef    string  `json:"source_ref"`
	SourceIn     float64 `json:"source_in"`
	SourceOut    float64 `json:"source_out"`
	At           float64 `json:"at"`
}

// SuggestClipsRequest previews provisional clips on the live timeline.
type SuggestClipsRequest struct {
	Suggestions []SuggestItem `json:"suggestions"`
}

// ConfirmSuggestionsRequest commits every previewed clip.
type ConfirmSuggestionsRequest struct{}

// CancelSuggestionsRequest discards every previewed clip.
type CancelSuggestionsRequest struct{}
