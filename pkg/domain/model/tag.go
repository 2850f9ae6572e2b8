package model

// TagOutcome is the terminal state of an ensure-tag operation
type TagOutcome string

const (
	TagCreated TagOutcome = "created" // tag created, or already pointing at the target
	TagUpdated TagOutcome = "updated" // existing tag force-moved to the target
	TagSkipped TagOutcome = "skipped" // existing tag pointed elsewhere, left untouched
	TagFailed  TagOutcome = "failed"
)

// TagRequest describes one ensure-tag invocation
type TagRequest struct {
	Repo       RepositoryRef
	Tag        string
	Commit     string // explicit target SHA; empty means default-branch tip
	SkipUpdate bool
}

// TagResult reports the outcome of an ensure-tag invocation. On TagSkipped,
// Commit holds the tag's current (unchanged) target. On TagFailed, Tag and
// Commit are empty.
type TagResult struct {
	Outcome TagOutcome
	Tag     string
	Commit  string
	Message string
}
