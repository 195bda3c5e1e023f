// internal/translate/translate.go
package translate

import (
	"fmt"
	"time"

	"github-jira-relay/internal/model"
)

// Defaults are the static Jira-side values applied to translated intents.
type Defaults struct {
	ProjectKey     string
	IssueType      string
	Assignee       string
	OpenStatusID   string
	ClosedStatusID string
	// Components maps a GitHub repository name to a Jira component id.
	Components map[string]string
}

// Translator turns a normalized GitHub event into a Jira intent. It is pure:
// identical input always yields an identical intent, and nothing is mutated.
type Translator struct {
	defaults Defaults
	table    map[model.EventAction]func(*model.GithubEvent) *model.JiraEvent
}

// New builds a Translator with a fixed dispatch table keyed by the
// (kind, action) pair. Pairs without an entry translate to no intent.
func New(defaults Defaults) *Translator {
	t := &Translator{defaults: defaults}
	t.table = map[model.EventAction]func(*model.GithubEvent) *model.JiraEvent{
		{Kind: model.IssuesEvent, Action: model.ActionOpened}:   t.issueOpened,
		{Kind: model.IssuesEvent, Action: model.ActionEdited}:   t.issueEdited,
		{Kind: model.IssuesEvent, Action: model.ActionClosed}:   t.issueClosed,
		{Kind: model.IssuesEvent, Action: model.ActionReopened}: t.issueReopened,
		// A deleted GitHub issue closes the Jira ticket; the mapping stays so
		// history remains addressable.
		{Kind: model.IssuesEvent, Action: model.ActionDeleted}: t.issueDeleted,

		{Kind: model.IssueCommentEvent, Action: model.ActionCreated}: t.commentCreated,
		{Kind: model.IssueCommentEvent, Action: model.ActionEdited}:  t.commentEdited,
		{Kind: model.IssueCommentEvent, Action: model.ActionDeleted}: t.commentDeleted,
	}
	return t
}

// Translate maps a GitHub event to a Jira intent, or nil when the
// (kind, action) pair has no translator; nil is normal, not an error.
// A non-empty issueKey or commentID supplied by the caller is attached to the
// intent's identifier slots unconditionally; callers must only supply values
// applicable to the event.
func (t *Translator) Translate(ev *model.GithubEvent, issueKey, commentID string) *model.JiraEvent {
	fn, ok := t.table[ev.Type]
	if !ok {
		return nil
	}
	intent := fn(ev)
	if issueKey != "" {
		intent.Issue.Key = issueKey
	}
	if commentID != "" {
		if intent.Comment == nil {
			intent.Comment = &model.JiraComment{}
		}
		intent.Comment.ID = commentID
	}
	return intent
}

func (t *Translator) issueOpened(ev *model.GithubEvent) *model.JiraEvent {
	return &model.JiraEvent{
		Type: model.JiraIssueCreate,
		Time: ev.Issue.UpdatedAt,
		Issue: model.JiraIssue{
			Summary:     ev.Issue.Title,
			Description: describeIssue(ev),
			Type:        t.defaults.IssueType,
			Project:     t.defaults.ProjectKey,
			Assignee:    t.defaults.Assignee,
			Components:  t.componentsFor(ev.Repository.Name),
		},
	}
}

func (t *Translator) issueEdited(ev *model.GithubEvent) *model.JiraEvent {
	description := markEdited(describeIssue(ev), ev.Issue.UpdatedAt, ev.Issue.User.Login)
	return &model.JiraEvent{
		Type: model.JiraIssueUpdate,
		Time: ev.Issue.UpdatedAt,
		Issue: model.JiraIssue{
			Summary:     ev.Issue.Title,
			Description: description,
			Type:        t.defaults.IssueType,
			Project:     t.defaults.ProjectKey,
			Assignee:    t.defaults.Assignee,
		},
	}
}

func (t *Translator) issueClosed(ev *model.GithubEvent) *model.JiraEvent {
	return t.transition(ev, t.defaults.ClosedStatusID)
}

func (t *Translator) issueReopened(ev *model.GithubEvent) *model.JiraEvent {
	return t.transition(ev, t.defaults.OpenStatusID)
}

func (t *Translator) issueDeleted(ev *model.GithubEvent) *model.JiraEvent {
	return t.transition(ev, t.defaults.ClosedStatusID)
}

func (t *Translator) transition(ev *model.GithubEvent, statusID string) *model.JiraEvent {
	return &model.JiraEvent{
		Type: model.JiraIssueTransition,
		Time: ev.Issue.UpdatedAt,
		Issue: model.JiraIssue{
			Status: &model.JiraStatus{ID: statusID},
		},
	}
}

func (t *Translator) commentCreated(ev *model.GithubEvent) *model.JiraEvent {
	return &model.JiraEvent{
		Type:    model.JiraCommentCreate,
		Time:    ev.Comment.UpdatedAt,
		Comment: &model.JiraComment{Body: describeComment(ev)},
	}
}

func (t *Translator) commentEdited(ev *model.GithubEvent) *model.JiraEvent {
	body := markEdited(describeComment(ev), ev.Comment.UpdatedAt, ev.Comment.User.Login)
	return &model.JiraEvent{
		Type:    model.JiraCommentUpdate,
		Time:    ev.Comment.UpdatedAt,
		Comment: &model.JiraComment{Body: body},
	}
}

func (t *Translator) commentDeleted(ev *model.GithubEvent) *model.JiraEvent {
	// No body; the comment identifier slot is filled from the mapping store.
	return &model.JiraEvent{
		Type:    model.JiraCommentDelete,
		Time:    ev.Comment.UpdatedAt,
		Comment: &model.JiraComment{},
	}
}

// componentsFor resolves the repository name through the component table;
// unmapped repositories get no components.
func (t *Translator) componentsFor(repoName string) []string {
	if id, ok := t.defaults.Components[repoName]; ok {
		return []string{id}
	}
	return nil
}

// describeIssue renders the GitHub reporter and issue body in the fixed
// quoted format used for Jira descriptions.
func describeIssue(ev *model.GithubEvent) string {
	return fmt.Sprintf("GitHub user %s writes (via %s):\n\n\"%s\"",
		ev.Issue.User.Login, ev.Issue.HTMLURL, ev.Issue.Body)
}

// describeComment renders the GitHub commenter and comment body in the same
// quoted format.
func describeComment(ev *model.GithubEvent) string {
	return fmt.Sprintf("GitHub user %s writes (via %s):\n\n\"%s\"",
		ev.Comment.User.Login, ev.Comment.HTMLURL, ev.Comment.Body)
}

// markEdited appends the edited-at annotation to a rendered body.
func markEdited(value string, at time.Time, login string) string {
	return fmt.Sprintf("%s\n\n *(edited at %s by %s)*", value, at.Format(time.RFC3339), login)
}
