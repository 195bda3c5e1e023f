// internal/model/jira.go
package model

import (
	"strings"
	"time"
)

// JiraEventType tags a Jira-side intent produced by translation.
type JiraEventType string

const (
	JiraIssueCreate     JiraEventType = "issue_create"
	JiraIssueUpdate     JiraEventType = "issue_update"
	JiraIssueDelete     JiraEventType = "issue_delete"
	JiraIssueTransition JiraEventType = "issue_transition"
	JiraCommentCreate   JiraEventType = "comment_create"
	JiraCommentUpdate   JiraEventType = "comment_update"
	JiraCommentDelete   JiraEventType = "comment_delete"
)

// IsCommentEvent reports whether the intent targets a comment.
func (t JiraEventType) IsCommentEvent() bool {
	return strings.HasPrefix(string(t), "comment_")
}

// IsCreationEvent reports whether the intent creates a new Jira entity, i.e.
// the remote assigns an identifier that must be recorded in the mapping store.
func (t JiraEventType) IsCreationEvent() bool {
	return strings.HasSuffix(string(t), "_create")
}

// IsUpdateEvent reports whether the intent refers to an already-mapped entity.
func (t JiraEventType) IsUpdateEvent() bool {
	return !t.IsCreationEvent()
}

// JiraStatus is a workflow status, identified by its transition id.
type JiraStatus struct {
	ID string `json:"id"`
}

// JiraIssue carries the issue fields of an intent. Key is empty for
// issue_create (the remote assigns it) and required for every intent
// reaching the propagator that targets an existing issue.
type JiraIssue struct {
	Key         string      `json:"key,omitempty"`
	Summary     string      `json:"summary"`
	Description string      `json:"description"`
	Type        string      `json:"issuetype"`
	Project     string      `json:"project"`
	Assignee    string      `json:"assignee,omitempty"`
	Status      *JiraStatus `json:"status,omitempty"`
	Components  []string    `json:"components,omitempty"`
}

// JiraComment carries the comment fields of a comment intent. ID is empty
// for comment_create and required for update/delete.
type JiraComment struct {
	ID   string `json:"id,omitempty"`
	Body string `json:"body"`
}

// JiraEvent is "what should happen in Jira" for one inbound GitHub event.
// The propagator mutates it in place to attach remote-assigned identifiers.
type JiraEvent struct {
	Type    JiraEventType `json:"event_type"`
	Time    time.Time     `json:"time"`
	Issue   JiraIssue     `json:"issue"`
	Comment *JiraComment  `json:"comment,omitempty"`
}
