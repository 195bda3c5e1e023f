// internal/github/parser_test.go
package github

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github-jira-relay/internal/errors"
	"github-jira-relay/internal/model"
)

const issuesOpenedPayload = `{
	"action": "opened",
	"issue": {
		"id": 42,
		"title": "Bug X",
		"body": "steps...",
		"created_at": "2024-05-01T09:30:00Z",
		"updated_at": "2024-05-01T10:30:00Z",
		"html_url": "https://github.com/arxiv/arxiv-search/issues/3",
		"user": {"id": 7, "login": "alice", "html_url": "https://github.com/alice"}
	},
	"repository": {"id": 99, "name": "arxiv-search"}
}`

const commentCreatedPayload = `{
	"action": "created",
	"issue": {
		"id": 42,
		"title": "Bug X",
		"body": "steps...",
		"created_at": "2024-05-01T09:30:00Z",
		"updated_at": "2024-05-01T10:30:00Z",
		"html_url": "https://github.com/arxiv/arxiv-search/issues/3",
		"user": {"id": 7, "login": "alice", "html_url": "https://github.com/alice"}
	},
	"comment": {
		"id": 314,
		"body": "same here",
		"created_at": "2024-05-01T11:00:00Z",
		"updated_at": "2024-05-01T11:00:00Z",
		"html_url": "https://github.com/arxiv/arxiv-search/issues/3#issuecomment-314",
		"user": {"id": 8, "login": "bob", "html_url": "https://github.com/bob"}
	},
	"repository": {"id": 99, "name": "arxiv-search"}
}`

func TestParseEvent_IssuesOpened(t *testing.T) {
	ev, err := ParseEvent(model.IssuesEvent, []byte(issuesOpenedPayload))

	require.NoError(t, err)
	assert.Equal(t, model.EventAction{Kind: model.IssuesEvent, Action: model.ActionOpened}, ev.Type)
	assert.Equal(t, int64(42), ev.Issue.ID)
	assert.Equal(t, "Bug X", ev.Issue.Title)
	assert.Equal(t, "alice", ev.Issue.User.Login)
	assert.Equal(t, "arxiv-search", ev.Repository.Name)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), ev.Issue.UpdatedAt)
	assert.Equal(t, time.UTC, ev.Issue.UpdatedAt.Location())
	assert.Nil(t, ev.Comment, "issue events carry no comment")
}

func TestParseEvent_IssueComment(t *testing.T) {
	ev, err := ParseEvent(model.IssueCommentEvent, []byte(commentCreatedPayload))

	require.NoError(t, err)
	assert.Equal(t, model.EventAction{Kind: model.IssueCommentEvent, Action: model.ActionCreated}, ev.Type)
	require.NotNil(t, ev.Comment)
	assert.Equal(t, int64(314), ev.Comment.ID)
	assert.Equal(t, "same here", ev.Comment.Body)
	assert.Equal(t, "bob", ev.Comment.User.Login)
	assert.Equal(t, time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC), ev.Comment.UpdatedAt)
}

func TestParseEvent_MalformedPayloads(t *testing.T) {
	t.Run("body is not JSON", func(t *testing.T) {
		_, err := ParseEvent(model.IssuesEvent, []byte("not json at all"))
		var malformed *apperrors.MalformedPayloadError
		assert.ErrorAs(t, err, &malformed)
	})

	t.Run("missing issue object", func(t *testing.T) {
		_, err := ParseEvent(model.IssuesEvent, []byte(`{"action": "opened", "repository": {"id": 1, "name": "r"}}`))
		var malformed *apperrors.MalformedPayloadError
		assert.ErrorAs(t, err, &malformed)
	})

	t.Run("comment event without comment object", func(t *testing.T) {
		_, err := ParseEvent(model.IssueCommentEvent, []byte(issuesOpenedPayload))
		var malformed *apperrors.MalformedPayloadError
		assert.ErrorAs(t, err, &malformed)
	})
}

func TestParseEvent_IgnoredShapes(t *testing.T) {
	t.Run("missing action", func(t *testing.T) {
		payload := `{
			"issue": {"id": 1, "created_at": "2024-05-01T09:30:00Z", "updated_at": "2024-05-01T09:30:00Z"},
			"repository": {"id": 1, "name": "r"}
		}`
		_, err := ParseEvent(model.IssuesEvent, []byte(payload))
		var parseErr *apperrors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("unrecognized action", func(t *testing.T) {
		payload := `{
			"action": "fooified",
			"issue": {"id": 1, "created_at": "2024-05-01T09:30:00Z", "updated_at": "2024-05-01T09:30:00Z"},
			"repository": {"id": 1, "name": "r"}
		}`
		_, err := ParseEvent(model.IssuesEvent, []byte(payload))
		var parseErr *apperrors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("action legal only for the other kind", func(t *testing.T) {
		_, err := ParseEvent(model.IssuesEvent, []byte(commentCreatedPayload))
		var parseErr *apperrors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("missing issue timestamp", func(t *testing.T) {
		payload := `{
			"action": "opened",
			"issue": {"id": 1, "title": "x", "created_at": "2024-05-01T09:30:00Z"},
			"repository": {"id": 1, "name": "r"}
		}`
		_, err := ParseEvent(model.IssuesEvent, []byte(payload))
		var parseErr *apperrors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}
