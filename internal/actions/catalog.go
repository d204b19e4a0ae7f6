package actions

// Spec describes one advertised operation: its name, what it does, and the
// typed parameter/return schema. The full catalog is sent to the remote
// agent once when its channel connects, so it can discover what it may call.
type Spec struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  []Field `json:"parameters"`
	Returns     []Field `json:"returns"`
}

// Field is one typed field of a parameter or return schema.
type Field struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
}

var commonReturns = []Field{
	{Name: "success", Type: "boolean", Description: "true only if every item succeeded"},
	{Name: "results", Type: "array", Description: "per-item outcome in input order"},
	{Name: "duration", Type: "number", Description: "timeline duration in seconds after the operation"},
}

var insertClipsSpec = Spec{
	Name:        "insert_clips",
	Description: "Insert a sequence of media clips back-to-back on the timeline starting at a position. Items that fail to resolve are skipped; later items close the gap.",
	Parameters: []Field{
		{Name: "at", Type: "number", Required: true, Description: "timeline position in seconds to start inserting at"},
		{Name: "clips", Type: "array", Required: true, Description: "ordered list of {source_ref, source_in, source_out} triples"},
	},
	Returns: commonReturns,
}

var deleteRangesSpec = Spec{
	Name:        "delete_ranges",
	Description: "Delete one or more time ranges from the timeline. Overlapping clips are split or trimmed and everything after each range ripples left. Invalid ranges are reported and skipped.",
	Parameters: []Field{
		{Name: "ranges", Type: "array", Required: true, Description: "list of {start, end} ranges in seconds"},
	},
	Returns: commonReturns,
}

var addTextsSpec = Spec{
	Name:        "add_texts",
	Description: "Add text overlays at explicit timeline positions.",
	Parameters: []Field{
		{Name: "texts", Type: "array", Required: true, Description: "list of {text, start, end} overlays"},
	},
	Returns: commonReturns,
}

var suggestClipsSpec = Spec{
	Name:        "suggest_clips",
	Description: "Preview provisional b-roll clips on the live timeline. The user can scrub them before they are confirmed or cancelled.",
	Parameters: []Field{
		{Name: "suggestions", Type: "array", Required: true, Description: "list of {suggestion_id, source_ref, source_in, source_out, at} placements"},
	},
	Returns: commonReturns,
}

var confirmSuggestionsSpec = Spec{
	Name:        "confirm_suggestions",
	Description: "Commit every previewed clip: provisional flags are cleared and temporary ids are replaced by permanent sequential ones.",
	Parameters:  []Field{},
	Returns: []Field{
		{Name: "success", Type: "boolean"},
		{Name: "confirmed", Type: "number", Description: "how many clips were committed"},
		{Name: "renamed", Type: "object", Description: "temporary id to permanent id"},
		{Name: "duration", Type: "number"},
	},
}

var cancelSuggestionsSpec = Spec{
	Name:        "cancel_suggestions",
	Description: "Discard every previewed clip. Committed clips are untouched.",
	Parameters:  []Field{},
	Returns: []Field{
		{Name: "success", Type: "boolean"},
		{Name: "cancelled", Type: "number", Description: "how many clips were removed"},
		{Name: "removed_ids", Type: "array"},
		{Name: "duration", Type: "number"},
	},
}
