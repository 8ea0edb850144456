package models

// PullRequest is the slice of a pull-request event the notifier cares about.
// It is built once per run and passed by value.
type PullRequest struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	URL          string `json:"url"`
	Author       string `json:"author"`        // "unknown" when the event has no user
	SourceBranch string `json:"source_branch"` // head ref, "?" when absent
	TargetBranch string `json:"target_branch"` // base ref, "?" when absent
}
