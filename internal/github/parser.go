// internal/github/parser.go
package github

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-github/v62/github"

	apperrors "github-jira-relay/internal/errors"
	"github-jira-relay/internal/model"
)

// envelope is the top-level shape shared by IssuesEvent and IssueCommentEvent
// payloads. Entity bodies stay raw so that a broken nested object is reported
// as a parse failure rather than a malformed request.
type envelope struct {
	Action     *string         `json:"action"`
	Issue      json.RawMessage `json:"issue"`
	Comment    json.RawMessage `json:"comment"`
	Repository json.RawMessage `json:"repository"`
}

// ParseEvent validates and normalizes a raw webhook payload into a
// model.GithubEvent. The event kind comes from the delivery route, the action
// from the payload body; only legal (kind, action) pairs are accepted.
//
// A *errors.MalformedPayloadError means the request itself was broken
// (not JSON, or a required top-level key absent). A *errors.ParseError means
// the event is well-shaped but not translatable (unknown action, bad
// timestamps) and should be acknowledged and ignored.
func ParseEvent(kind model.EventKind, raw []byte) (*model.GithubEvent, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &apperrors.MalformedPayloadError{Reason: "request body is not valid JSON", Cause: err}
	}
	if env.Issue == nil {
		return nil, &apperrors.MalformedPayloadError{Reason: "missing issue object"}
	}
	if env.Repository == nil {
		return nil, &apperrors.MalformedPayloadError{Reason: "missing repository object"}
	}
	if kind == model.IssueCommentEvent && env.Comment == nil {
		return nil, &apperrors.MalformedPayloadError{Reason: "missing comment object"}
	}

	if env.Action == nil {
		return nil, &apperrors.ParseError{Reason: "missing action field"}
	}
	pair := model.EventAction{Kind: kind, Action: model.Action(*env.Action)}
	if !pair.IsLegal() {
		return nil, &apperrors.ParseError{Reason: fmt.Sprintf("unrecognized action %q for %s", *env.Action, kind)}
	}

	var ghIssue github.Issue
	if err := json.Unmarshal(env.Issue, &ghIssue); err != nil {
		return nil, &apperrors.ParseError{Reason: "invalid issue fields", Cause: err}
	}
	if ghIssue.CreatedAt == nil || ghIssue.UpdatedAt == nil {
		return nil, &apperrors.ParseError{Reason: "issue is missing a required timestamp"}
	}

	var ghRepo github.Repository
	if err := json.Unmarshal(env.Repository, &ghRepo); err != nil {
		return nil, &apperrors.ParseError{Reason: "invalid repository fields", Cause: err}
	}

	event := &model.GithubEvent{
		Type:       pair,
		Repository: toInternalRepository(&ghRepo),
		Issue:      toInternalIssue(&ghIssue),
	}

	if kind == model.IssueCommentEvent {
		var ghComment github.IssueComment
		if err := json.Unmarshal(env.Comment, &ghComment); err != nil {
			return nil, &apperrors.ParseError{Reason: "invalid comment fields", Cause: err}
		}
		if ghComment.CreatedAt == nil || ghComment.UpdatedAt == nil {
			return nil, &apperrors.ParseError{Reason: "comment is missing a required timestamp"}
		}
		comment := toInternalComment(&ghComment)
		event.Comment = &comment
	}

	return event, nil
}

// toInternalRepository translates a github.Repository object to our internal model.
func toInternalRepository(r *github.Repository) model.GithubRepository {
	return model.GithubRepository{
		ID:   r.GetID(),
		Name: r.GetName(),
	}
}

// toInternalIssue translates a github.Issue object to our internal model.
// Timestamps are normalized to UTC.
func toInternalIssue(i *github.Issue) model.GithubIssue {
	return model.GithubIssue{
		ID:        i.GetID(),
		Title:     i.GetTitle(),
		Body:      i.GetBody(),
		CreatedAt: i.GetCreatedAt().Time.UTC(),
		UpdatedAt: i.GetUpdatedAt().Time.UTC(),
		HTMLURL:   i.GetHTMLURL(),
		User:      toInternalUser(i.GetUser()),
	}
}

// toInternalComment translates a github.IssueComment object to our internal model.
func toInternalComment(c *github.IssueComment) model.GithubComment {
	return model.GithubComment{
		ID:        c.GetID(),
		Body:      c.GetBody(),
		CreatedAt: c.GetCreatedAt().Time.UTC(),
		UpdatedAt: c.GetUpdatedAt().Time.UTC(),
		HTMLURL:   c.GetHTMLURL(),
		User:      toInternalUser(c.GetUser()),
	}
}

func toInternalUser(u *github.User) model.GithubUser {
	return model.GithubUser{
		ID:      u.GetID(),
		Login:   u.GetLogin(),
		HTMLURL: u.GetHTMLURL(),
	}
}
