// internal/jira/client.go
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github-jira-relay/internal/model"
)

// Client is a minimal Jira REST client covering the ticket, transition and
// comment operations the propagator needs. It is constructed once at startup
// and injected; it holds no global state.
type Client struct {
	baseURL  string
	username string
	token    string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient creates a Client authenticating with HTTP basic auth
// (username + API token). A zero timeout defaults to 30 seconds.
func NewClient(baseURL, username, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type projectField struct {
	Key string `json:"key"`
}

type issueTypeField struct {
	Name string `json:"name"`
}

type nameField struct {
	Name string `json:"name"`
}

type idField struct {
	ID string `json:"id"`
}

type issueFields struct {
	Project     projectField   `json:"project"`
	Summary     string         `json:"summary"`
	Description string         `json:"description"`
	IssueType   issueTypeField `json:"issuetype"`
	Assignee    *nameField     `json:"assignee,omitempty"`
	Components  []idField      `json:"components,omitempty"`
}

type issuePayload struct {
	Fields issueFields `json:"fields"`
}

type createdResource struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

func toIssueFields(issue model.JiraIssue) issueFields {
	fields := issueFields{
		Project:     projectField{Key: issue.Project},
		Summary:     issue.Summary,
		Description: issue.Description,
		IssueType:   issueTypeField{Name: issue.Type},
	}
	if issue.Assignee != "" {
		fields.Assignee = &nameField{Name: issue.Assignee}
	}
	for _, id := range issue.Components {
		fields.Components = append(fields.Components, idField{ID: id})
	}
	return fields
}

// CreateIssue creates a ticket and returns the key Jira assigned to it.
func (c *Client) CreateIssue(ctx context.Context, issue model.JiraIssue) (string, error) {
	url := fmt.Sprintf("%s/rest/api/2/issue", c.baseURL)
	var created createdResource
	if err := c.postJSON(ctx, url, issuePayload{Fields: toIssueFields(issue)}, &created); err != nil {
		return "", err
	}
	c.logger.Debug("Created Jira issue", "key", created.Key)
	return created.Key, nil
}

// UpdateIssue replaces the summary and description of an existing ticket.
// The key itself is never patched.
func (c *Client) UpdateIssue(ctx context.Context, key string, issue model.JiraIssue) error {
	url := fmt.Sprintf("%s/rest/api/2/issue/%s", c.baseURL, key)
	payload := map[string]any{
		"fields": map[string]string{
			"summary":     issue.Summary,
			"description": issue.Description,
		},
	}
	return c.send(ctx, http.MethodPut, url, payload, nil)
}

// TransitionIssue moves a ticket through the workflow transition with the
// given id.
func (c *Client) TransitionIssue(ctx context.Context, key, statusID string) error {
	url := fmt.Sprintf("%s/rest/api/2/issue/%s/transitions", c.baseURL, key)
	payload := map[string]any{
		"transition": map[string]string{"id": statusID},
	}
	return c.send(ctx, http.MethodPost, url, payload, nil)
}

// AddComment adds a comment to a ticket and returns the id Jira assigned.
func (c *Client) AddComment(ctx context.Context, issueKey, body string) (string, error) {
	url := fmt.Sprintf("%s/rest/api/2/issue/%s/comment", c.baseURL, issueKey)
	var created createdResource
	if err := c.postJSON(ctx, url, map[string]string{"body": body}, &created); err != nil {
		return "", err
	}
	c.logger.Debug("Created Jira comment", "issue", issueKey, "id", created.ID)
	return created.ID, nil
}

// UpdateComment replaces the body of an existing comment.
func (c *Client) UpdateComment(ctx context.Context, issueKey, commentID, body string) error {
	url := fmt.Sprintf("%s/rest/api/2/issue/%s/comment/%s", c.baseURL, issueKey, commentID)
	return c.send(ctx, http.MethodPut, url, map[string]string{"body": body}, nil)
}

// DeleteComment removes a comment from a ticket.
func (c *Client) DeleteComment(ctx context.Context, issueKey, commentID string) error {
	url := fmt.Sprintf("%s/rest/api/2/issue/%s/comment/%s", c.baseURL, issueKey, commentID)
	return c.send(ctx, http.MethodDelete, url, nil, nil)
}

func (c *Client) postJSON(ctx context.Context, url string, payload, out any) error {
	return c.send(ctx, http.MethodPost, url, payload, out)
}

func (c *Client) send(ctx context.Context, method, url string, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.username, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("jira api error (%d): %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
