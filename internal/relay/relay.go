// internal/relay/relay.go
package relay

import (
	"context"
	"errors"
	"log/slog"

	"github-jira-relay/internal/github"
	"github-jira-relay/internal/model"
	"github-jira-relay/internal/store"
	"github-jira-relay/internal/translate"
)

// Propagator executes a Jira intent against the remote tracker.
type Propagator interface {
	Propagate(ctx context.Context, ev *model.JiraEvent) (*model.JiraEvent, error)
}

// Relay runs the full pipeline for one inbound webhook delivery:
// parse -> audit -> mapping lookup -> translate -> propagate -> store mapping.
// Each delivery is handled synchronously within its request; deliveries for
// different GitHub entities are independent. Two racing creations for the
// same entity are resolved by the store's insert-if-absent guarantee.
type Relay struct {
	store      store.Store
	translator *translate.Translator
	propagator Propagator
	logger     *slog.Logger
}

func New(st store.Store, translator *translate.Translator, propagator Propagator, logger *slog.Logger) *Relay {
	return &Relay{
		store:      st,
		translator: translator,
		propagator: propagator,
		logger:     logger,
	}
}

// Handle processes one raw webhook payload of the given kind. It returns the
// propagated Jira intent, or (nil, nil) when the event is recognized but has
// no translation. Parse and propagation failures surface as the typed errors
// from internal/errors; the caller maps them to HTTP statuses.
func (r *Relay) Handle(ctx context.Context, kind model.EventKind, raw []byte) (*model.JiraEvent, error) {
	ev, err := github.ParseEvent(kind, raw)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With("kind", string(ev.Type.Kind), "action", string(ev.Type.Action), "issue_id", ev.Issue.ID)
	logger.Info("Handling GitHub event")

	if err := r.store.RecordEvent(ctx, ev, raw); err != nil {
		return nil, err
	}

	// Known Jira identifiers are looked up only for events that can refer to
	// an already-mapped entity. A miss is forwarded as an empty value; the
	// propagator rejects operations that require an identifier it lacks.
	var issueKey, commentID string
	issueOpened := model.EventAction{Kind: model.IssuesEvent, Action: model.ActionOpened}
	commentCreated := model.EventAction{Kind: model.IssueCommentEvent, Action: model.ActionCreated}
	if ev.Type != issueOpened {
		issueKey, err = r.store.FindIssueKey(ctx, ev.Issue.ID)
		if err != nil {
			return nil, err
		}
	}
	if ev.Type.IsCommentEvent() && ev.Type != commentCreated {
		commentID, err = r.store.FindCommentID(ctx, ev.Comment.ID)
		if err != nil {
			return nil, err
		}
	}

	intent := r.translator.Translate(ev, issueKey, commentID)
	if intent == nil {
		logger.Info("No Jira intent for event, nothing to do")
		return nil, nil
	}

	result, err := r.propagator.Propagate(ctx, intent)
	if err != nil {
		return nil, err
	}

	if result.Type.IsCreationEvent() {
		if result.Type.IsCommentEvent() {
			err = r.store.InsertCommentMapping(ctx, ev.Comment.ID, result.Comment.ID)
		} else {
			err = r.store.InsertIssueMapping(ctx, ev.Issue.ID, result.Issue.Key)
		}
		if errors.Is(err, store.ErrAlreadyMapped) {
			// A concurrent delivery won the insert; the surviving mapping is
			// the correct one, this propagation was best-effort.
			logger.Warn("Mapping already recorded by an earlier delivery")
		} else if err != nil {
			return nil, err
		}
	}

	logger.Info("Propagated event to Jira", "jira_event", string(result.Type), "issue_key", result.Issue.Key)
	return result, nil
}
