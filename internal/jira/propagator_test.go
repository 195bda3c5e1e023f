// internal/jira/propagator_test.go
package jira

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github-jira-relay/internal/errors"
	"github-jira-relay/internal/model"
)

// MockAPI is a mock of the API interface.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) CreateIssue(ctx context.Context, issue model.JiraIssue) (string, error) {
	args := m.Called(ctx, issue)
	return args.String(0), args.Error(1)
}
func (m *MockAPI) UpdateIssue(ctx context.Context, key string, issue model.JiraIssue) error {
	args := m.Called(ctx, key, issue)
	return args.Error(0)
}
func (m *MockAPI) TransitionIssue(ctx context.Context, key, statusID string) error {
	args := m.Called(ctx, key, statusID)
	return args.Error(0)
}
func (m *MockAPI) AddComment(ctx context.Context, issueKey, body string) (string, error) {
	args := m.Called(ctx, issueKey, body)
	return args.String(0), args.Error(1)
}
func (m *MockAPI) UpdateComment(ctx context.Context, issueKey, commentID, body string) error {
	args := m.Called(ctx, issueKey, commentID, body)
	return args.Error(0)
}
func (m *MockAPI) DeleteComment(ctx context.Context, issueKey, commentID string) error {
	args := m.Called(ctx, issueKey, commentID)
	return args.Error(0)
}

func testPropagator(api API) *Propagator {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewPropagator(api, logger)
}

func TestPropagate_IssueCreate(t *testing.T) {
	mockAPI := new(MockAPI)
	ctx := context.Background()
	intent := &model.JiraEvent{
		Type:  model.JiraIssueCreate,
		Issue: model.JiraIssue{Summary: "Bug X", Project: "ARXIVNG", Type: "Task"},
	}
	mockAPI.On("CreateIssue", ctx, intent.Issue).Return("ARXIVNG-7", nil).Once()

	result, err := testPropagator(mockAPI).Propagate(ctx, intent)

	require.NoError(t, err)
	assert.Equal(t, "ARXIVNG-7", result.Issue.Key, "tracker-assigned key is attached to the intent")
	mockAPI.AssertExpectations(t)
}

func TestPropagate_CommentCreate(t *testing.T) {
	mockAPI := new(MockAPI)
	ctx := context.Background()
	intent := &model.JiraEvent{
		Type:    model.JiraCommentCreate,
		Issue:   model.JiraIssue{Key: "ARXIVNG-7"},
		Comment: &model.JiraComment{Body: "a comment"},
	}
	mockAPI.On("AddComment", ctx, "ARXIVNG-7", "a comment").Return("10001", nil).Once()

	result, err := testPropagator(mockAPI).Propagate(ctx, intent)

	require.NoError(t, err)
	assert.Equal(t, "10001", result.Comment.ID)
	mockAPI.AssertExpectations(t)
}

func TestPropagate_Transition(t *testing.T) {
	mockAPI := new(MockAPI)
	ctx := context.Background()
	intent := &model.JiraEvent{
		Type:  model.JiraIssueTransition,
		Issue: model.JiraIssue{Key: "ARXIVNG-7", Status: &model.JiraStatus{ID: "7"}},
	}
	mockAPI.On("TransitionIssue", ctx, "ARXIVNG-7", "7").Return(nil).Once()

	_, err := testPropagator(mockAPI).Propagate(ctx, intent)

	require.NoError(t, err)
	mockAPI.AssertExpectations(t)
}

func TestPropagate_MissingIdentifiers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		intent *model.JiraEvent
	}{
		{
			name:   "issue update without key",
			intent: &model.JiraEvent{Type: model.JiraIssueUpdate},
		},
		{
			name:   "issue transition without key",
			intent: &model.JiraEvent{Type: model.JiraIssueTransition, Issue: model.JiraIssue{Status: &model.JiraStatus{ID: "7"}}},
		},
		{
			name:   "comment create without issue key",
			intent: &model.JiraEvent{Type: model.JiraCommentCreate, Comment: &model.JiraComment{Body: "b"}},
		},
		{
			name:   "comment update without comment id",
			intent: &model.JiraEvent{Type: model.JiraCommentUpdate, Issue: model.JiraIssue{Key: "ARXIVNG-7"}, Comment: &model.JiraComment{Body: "b"}},
		},
		{
			name:   "comment delete without comment id",
			intent: &model.JiraEvent{Type: model.JiraCommentDelete, Issue: model.JiraIssue{Key: "ARXIVNG-7"}, Comment: &model.JiraComment{}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockAPI := new(MockAPI)

			_, err := testPropagator(mockAPI).Propagate(ctx, tc.intent)

			var propErr *apperrors.PropagationError
			require.ErrorAs(t, err, &propErr)
			// No remote call may be attempted when a precondition is missing.
			mockAPI.AssertNotCalled(t, "CreateIssue")
			mockAPI.AssertNotCalled(t, "UpdateIssue")
			mockAPI.AssertNotCalled(t, "TransitionIssue")
			mockAPI.AssertNotCalled(t, "AddComment")
			mockAPI.AssertNotCalled(t, "UpdateComment")
			mockAPI.AssertNotCalled(t, "DeleteComment")
		})
	}
}

func TestPropagate_RemoteFailure(t *testing.T) {
	mockAPI := new(MockAPI)
	ctx := context.Background()
	remoteErr := errors.New("jira api error (503): service unavailable")
	intent := &model.JiraEvent{
		Type:  model.JiraIssueUpdate,
		Issue: model.JiraIssue{Key: "ARXIVNG-7", Summary: "Bug X"},
	}
	mockAPI.On("UpdateIssue", ctx, "ARXIVNG-7", intent.Issue).Return(remoteErr).Once()

	_, err := testPropagator(mockAPI).Propagate(ctx, intent)

	var propErr *apperrors.PropagationError
	require.ErrorAs(t, err, &propErr)
	assert.ErrorIs(t, err, remoteErr, "the underlying cause is carried")
	mockAPI.AssertExpectations(t)
}
