// internal/model/github.go
package model

import "time"

// EventKind is the webhook event family, taken from the delivery route.
type EventKind string

const (
	IssuesEvent       EventKind = "IssuesEvent"
	IssueCommentEvent EventKind = "IssueCommentEvent"
)

// Action is the "action" field of a GitHub issue/comment webhook payload.
type Action string

const (
	ActionOpened       Action = "opened"
	ActionEdited       Action = "edited"
	ActionDeleted      Action = "deleted"
	ActionClosed       Action = "closed"
	ActionReopened     Action = "reopened"
	ActionTransferred  Action = "transferred"
	ActionPinned       Action = "pinned"
	ActionUnpinned     Action = "unpinned"
	ActionAssigned     Action = "assigned"
	ActionUnassigned   Action = "unassigned"
	ActionLabeled      Action = "labeled"
	ActionUnlabeled    Action = "unlabeled"
	ActionLocked       Action = "locked"
	ActionUnlocked     Action = "unlocked"
	ActionMilestoned   Action = "milestoned"
	ActionDemilestoned Action = "demilestoned"
	ActionCreated      Action = "created"
)

// EventAction is the pair discriminator for an inbound event. Only pairs
// listed in legalPairs are recognized; of those, only the ones with a
// translator entry produce a Jira intent.
type EventAction struct {
	Kind   EventKind
	Action Action
}

var legalPairs = map[EventAction]struct{}{
	{IssuesEvent, ActionOpened}:        {},
	{IssuesEvent, ActionEdited}:        {},
	{IssuesEvent, ActionDeleted}:       {},
	{IssuesEvent, ActionClosed}:        {},
	{IssuesEvent, ActionReopened}:      {},
	{IssuesEvent, ActionTransferred}:   {},
	{IssuesEvent, ActionPinned}:        {},
	{IssuesEvent, ActionUnpinned}:      {},
	{IssuesEvent, ActionAssigned}:      {},
	{IssuesEvent, ActionUnassigned}:    {},
	{IssuesEvent, ActionLabeled}:       {},
	{IssuesEvent, ActionUnlabeled}:     {},
	{IssuesEvent, ActionLocked}:        {},
	{IssuesEvent, ActionUnlocked}:      {},
	{IssuesEvent, ActionMilestoned}:    {},
	{IssuesEvent, ActionDemilestoned}:  {},
	{IssueCommentEvent, ActionCreated}: {},
	{IssueCommentEvent, ActionEdited}:  {},
	{IssueCommentEvent, ActionDeleted}: {},
}

// IsLegal reports whether the kind/action pair is one GitHub actually sends
// for issues and issue comments.
func (ea EventAction) IsLegal() bool {
	_, ok := legalPairs[ea]
	return ok
}

// IsCommentEvent reports whether the pair belongs to the comment event family.
func (ea EventAction) IsCommentEvent() bool {
	return ea.Kind == IssueCommentEvent
}

// IsCreationEvent reports whether the pair creates a new GitHub entity, i.e.
// whether there can be no prior mapping to look up for it.
func (ea EventAction) IsCreationEvent() bool {
	return ea == EventAction{IssuesEvent, ActionOpened} ||
		ea == EventAction{IssueCommentEvent, ActionCreated}
}

// GithubUser is the author of an issue or comment.
type GithubUser struct {
	ID      int64  `json:"id"`
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// GithubRepository identifies the repository an event originated from.
type GithubRepository struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GithubIssue is the issue an event refers to. Timestamps are UTC.
type GithubIssue struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	HTMLURL   string     `json:"html_url"`
	User      GithubUser `json:"user"`
}

// GithubComment is the comment a comment event refers to. Timestamps are UTC.
type GithubComment struct {
	ID        int64      `json:"id"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	HTMLURL   string     `json:"html_url"`
	User      GithubUser `json:"user"`
}

// GithubEvent is a normalized inbound webhook event. It is constructed once
// by the parser and immutable afterwards. Comment is non-nil exactly when
// Type.Kind == IssueCommentEvent; the parser enforces this.
type GithubEvent struct {
	Type       EventAction      `json:"event_type"`
	Repository GithubRepository `json:"repository"`
	Issue      GithubIssue      `json:"issue"`
	Comment    *GithubComment   `json:"comment,omitempty"`
}
