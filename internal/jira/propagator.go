// internal/jira/propagator.go
package jira

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github-jira-relay/internal/errors"
	"github-jira-relay/internal/model"
)

var (
	errMissingIssueKey  = errors.New("no issue key for the target issue")
	errMissingCommentID = errors.New("no comment id for the target comment")
)

// API is the set of remote Jira operations the propagator dispatches to.
// *Client implements it; tests substitute a mock.
type API interface {
	CreateIssue(ctx context.Context, issue model.JiraIssue) (string, error)
	UpdateIssue(ctx context.Context, key string, issue model.JiraIssue) error
	TransitionIssue(ctx context.Context, key, statusID string) error
	AddComment(ctx context.Context, issueKey, body string) (string, error)
	UpdateComment(ctx context.Context, issueKey, commentID, body string) error
	DeleteComment(ctx context.Context, issueKey, commentID string) error
}

// Propagator executes a Jira intent against the remote tracker. Creation
// intents get the remote-assigned identifier attached before being handed
// back; everything else is returned unchanged on success. A missing
// precondition identifier fails before any remote call is made.
type Propagator struct {
	api    API
	logger *slog.Logger
}

func NewPropagator(api API, logger *slog.Logger) *Propagator {
	return &Propagator{api: api, logger: logger}
}

func (p *Propagator) Propagate(ctx context.Context, ev *model.JiraEvent) (*model.JiraEvent, error) {
	switch ev.Type {
	case model.JiraIssueCreate:
		key, err := p.api.CreateIssue(ctx, ev.Issue)
		if err != nil {
			return nil, &apperrors.PropagationError{Op: "create issue", Cause: err}
		}
		ev.Issue.Key = key
		return ev, nil

	case model.JiraIssueUpdate:
		if ev.Issue.Key == "" {
			return nil, &apperrors.PropagationError{Op: "update issue", Cause: errMissingIssueKey}
		}
		if err := p.api.UpdateIssue(ctx, ev.Issue.Key, ev.Issue); err != nil {
			return nil, &apperrors.PropagationError{Op: "update issue", Cause: err}
		}
		return ev, nil

	case model.JiraIssueTransition:
		if ev.Issue.Key == "" {
			return nil, &apperrors.PropagationError{Op: "transition issue", Cause: errMissingIssueKey}
		}
		if err := p.api.TransitionIssue(ctx, ev.Issue.Key, ev.Issue.Status.ID); err != nil {
			return nil, &apperrors.PropagationError{Op: "transition issue", Cause: err}
		}
		return ev, nil

	case model.JiraCommentCreate:
		if ev.Issue.Key == "" {
			return nil, &apperrors.PropagationError{Op: "create comment", Cause: errMissingIssueKey}
		}
		id, err := p.api.AddComment(ctx, ev.Issue.Key, ev.Comment.Body)
		if err != nil {
			return nil, &apperrors.PropagationError{Op: "create comment", Cause: err}
		}
		ev.Comment.ID = id
		return ev, nil

	case model.JiraCommentUpdate:
		if ev.Issue.Key == "" {
			return nil, &apperrors.PropagationError{Op: "update comment", Cause: errMissingIssueKey}
		}
		if ev.Comment == nil || ev.Comment.ID == "" {
			return nil, &apperrors.PropagationError{Op: "update comment", Cause: errMissingCommentID}
		}
		if err := p.api.UpdateComment(ctx, ev.Issue.Key, ev.Comment.ID, ev.Comment.Body); err != nil {
			return nil, &apperrors.PropagationError{Op: "update comment", Cause: err}
		}
		return ev, nil

	case model.JiraCommentDelete:
		if ev.Issue.Key == "" {
			return nil, &apperrors.PropagationError{Op: "delete comment", Cause: errMissingIssueKey}
		}
		if ev.Comment == nil || ev.Comment.ID == "" {
			return nil, &apperrors.PropagationError{Op: "delete comment", Cause: errMissingCommentID}
		}
		if err := p.api.DeleteComment(ctx, ev.Issue.Key, ev.Comment.ID); err != nil {
			return nil, &apperrors.PropagationError{Op: "delete comment", Cause: err}
		}
		return ev, nil

	default:
		// No registered operation for this intent kind; treat it as
		// already complete.
		p.logger.Debug("No propagation registered for intent", "type", ev.Type)
		return ev, nil
	}
}
