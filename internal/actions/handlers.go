package actions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cutline/cutline-agent/internal/timeline"
)

// insertClips places a sequence of source references back-to-back starting at
// the requested position. The cursor only advances past items that actually
// inserted, so a failed item leaves no gap and its successors close ranks.
func (r *Registry) insertClips(ctx context.Context, ec Context, raw json.RawMessage) (Context, Result) {
	var req InsertClipsRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return ec, failure("invalid parameters: " + err.Error())
	}
	if len(req.Clips) == 0 {
		return ec, failure("clips must be a non-empty array")
	}

	current := ec
	cursor := req.At
	items := make([]ItemResult, 0, len(req.Clips))
	allOK := true

	for _, item := range req.Clips {
		next, itemRes, advance := insertOne(ctx, current, cursor, item)
		if itemRes.Success {
			current = next
			cursor += advance
		} else {
			allOK = false
		}
		items = append(items, itemRes)
	}

	res := Result{
		Success: allOK,
		Data: map[string]any{
			"results":  items,
			"duration": current.Clips.Duration(),
		},
	}
	if !allOK {
		res.Error = "one or more clips failed to insert"
	}
	return current, res
}

// insertOne is the single-item building block of insertClips. It returns the
// updated context, the per-item outcome, and how far the cursor advances.
func insertOne(ctx context.Context, ec Context, at float64, item InsertItem) (Context, ItemResult, float64) {
	if item.SourceRef == "" {
		return ec, ItemResult{Error: "source_ref is required"}, 0
	}
	if item.SourceOut <= item.SourceIn {
		return ec, ItemResult{Error: fmt.Sprintf("invalid source interval [%.3f, %.3f]", item.SourceIn, item.SourceOut)}, 0
	}
	if ec.Resolver == nil {
		return ec, ItemResult{Error: "media library unavailable"}, 0
	}

	asset, err := ec.Resolver.Resolve(ctx, item.SourceRef)
	if err != nil {
		return ec, ItemResult{Error: fmt.Sprintf("failed to resolve %s: %v", item.SourceRef, err)}, 0
	}
	if asset == nil {
		return ec, ItemResult{Error: fmt.Sprintf("source file %s not found", item.SourceRef)}, 0
	}

	clips, inserted := timeline.InsertSequence(ec.Clips, at, []timeline.NewClip{{
		SourceRef: asset.Ref,
		Type:      asset.Kind,
		SourceIn:  item.SourceIn,
		SourceOut: item.SourceOut,
	}})
	clip := inserted[0]
	ec.Clips = clips

	return ec, ItemResult{
		Success: true,
		Data: map[string]any{
			"clip_id": clip.ID,
			"start":   clip.Start,
			"end":     clip.End,
		},
	}, clip.Duration()
}

// deleteRanges removes one or more time ranges. Ordering and per-range
// isolation live in the timeline algorithm; outcomes come back in input
// order.
func (r *Registry) deleteRanges(_ context.Context, ec Context, raw json.RawMessage) (Context, Result) {
	var req DeleteRangesRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return ec, failure("invalid parameters: " + err.Error())
	}
	if len(req.Ranges) == 0 {
		return ec, failure("ranges must be a non-empty array")
	}

	clips, outcomes := timeline.DeleteRanges(ec.Clips, req.Ranges)
	ec.Clips = clips

	allOK := true
	items := make([]ItemResult, 0, len(outcomes))
	for _, o := range outcomes {
		item := ItemResult{Success: o.Success, Error: o.Error}
		if o.Success {
			item.Data = map[string]any{
				"deleted_ids": o.DeletedIDs,
				"created_ids": o.CreatedIDs,
				"shifted_ids": o.ShiftedIDs,
			}
		} else {
			allOK = false
		}
		items = append(items, item)
	}

	res := Result{
		Success: allOK,
		Data: map[string]any{
			"results":  items,
			"duration": clips.Duration(),
		},
	}
	if !allOK {
		res.Error = "one or more ranges were invalid"
	}
	return ec, res
}

// addTexts adds overlays at explicit positions, chaining the single-item
// handler through the batch.
func (r *Registry) addTexts(_ context.Context, ec Context, raw json.RawMessage) (Context, Result) {
	var req AddTextsRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return ec, failure("invalid parameters: " + err.Error())
	}
	if len(req.Texts) == 0 {
		return ec, failure("texts must be a non-empty array")
	}

	current := ec
	items := make([]ItemResult, 0, len(req.Texts))
	allOK := true

	for _, item := range req.Texts {
		next, itemRes := addTextOne(current, item)
		if itemRes.Success {
			current = next
		} else {
			allOK = false
		}
		items = append(items, itemRes)
	}

	res := Result{
		Success: allOK,
		Data: map[string]any{
			"results":  items,
			"duration": current.Clips.Duration(),
		},
	}
	if !allOK {
		res.Error = "one or more texts failed to add"
	}
	return current, res
}

func addTextOne(ec Context, item TextItem) (Context, ItemResult) {
	if item.End <= item.Start {
		return ec, ItemResult{Error: fmt.Sprintf("invalid text interval [%.3f, %.3f]", item.Start, item.End)}
	}

	clips, clip := timeline.InsertText(ec.Clips, item.Text, item.Start, item.End)
	ec.Clips = clips
	return ec, ItemResult{
		Success: true,
		Data: map[string]any{
			"clip_id": clip.ID,
			"start":   clip.Start,
			"end":     clip.End,
		},
	}
}

// suggestClips previews provisional b-roll clips on the live timeline.
func (r *Registry) suggestClips(ctx context.Context, ec Context, raw json.RawMessage) (Context, Result) {
	var req SuggestClipsRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return ec, failure("invalid parameters: " + err.Error())
	}
	if len(req.Suggestions) == 0 {
		return ec, failure("suggestions must be a non-empty array")
	}

	current := ec
	items := make([]ItemResult, 0, len(req.Suggestions))
	allOK := true

	for _, item := range req.Suggestions {
		next, itemRes := suggestOne(ctx, current, item)
		if itemRes.Success {
			current = next
		} else {
			allOK = false
		}
		items = append(items, itemRes)
	}

	res := Result{
		Success: allOK,
		Data: map[string]any{
			"results":  items,
			"duration": current.Clips.Duration(),
		},
	}
	if !allOK {
		res.Error = "one or more suggestions failed"
	}
	return current, res
}

func suggestOne(ctx context.Context, ec Context, item SuggestItem) (Context, ItemResult) {
	if item.SuggestionID == "" {
		return ec, ItemResult{Error: "suggestion_id is required"}
	}
	if item.SourceOut <= item.SourceIn {
		return ec, ItemResult{Error: fmt.Sprintf("invalid source interval [%.3f, %.3f]", item.SourceIn, item.SourceOut)}
	}
	if ec.Resolver == nil {
		return ec, ItemResult{Error: "media library unavailable"}
	}

	asset, err := ec.Resolver.Resolve(ctx, item.SourceRef)
	if err != nil {
		return ec, ItemResult{Error: fmt.Sprintf("failed to resolve %s: %v", item.SourceRef, err)}
	}
	if asset == nil {
		return ec, ItemResult{Error: fmt.Sprintf("source file %s not found", item.SourceRef)}
	}

	clips, clip := timeline.AddSuggested(ec.Clips, item.SuggestionID, timeline.NewClip{
		SourceRef: asset.Ref,
		Type:      asset.Kind,
		SourceIn:  item.SourceIn,
		SourceOut: item.SourceOut,
	}, item.At)
	ec.Clips = clips

	return ec, ItemResult{
		Success: true,
		Data: map[string]any{
			"clip_id":       clip.ID,
			"suggestion_id": clip.SuggestionID,
			"start":         clip.Start,
			"end":           clip.End,
		},
	}
}

// confirmSuggestions commits every previewed clip under a permanent id.
func (r *Registry) confirmSuggestions(_ context.Context, ec Context, raw json.RawMessage) (Context, Result) {
	clips, renamed := timeline.ConfirmSuggested(ec.Clips)
	ec.Clips = clips
	return ec, success(map[string]any{
		"confirmed": len(renamed),
		"renamed":   renamed,
		"duration":  clips.Duration(),
	})
}

// cancelSuggestions discards every previewed clip.
func (r *Registry) cancelSuggestions(_ context.Context, ec Context, raw json.RawMessage) (Context, Result) {
	clips, removed := timeline.CancelSuggested(ec.Clips)
	ec.Clips = clips
	return ec, success(map[string]any{
		"cancelled":   len(removed),
		"removed_ids": removed,
		"duration":    clips.Duration(),
	})
}
