// internal/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github-jira-relay/internal/model"
)

// ErrAlreadyMapped is returned by the insert operations when a mapping for
// the GitHub id already exists. Mappings are append-only and never
// overwritten; for the system as a whole an existing mapping is a success
// condition, so callers log this and move on.
var ErrAlreadyMapped = errors.New("mapping already exists")

// Store is the durable record of GitHub-id to Jira-id correspondences plus
// the append-only event audit log. A lookup miss is not an error: the Find
// methods return an empty string and a nil error.
type Store interface {
	RecordEvent(ctx context.Context, ev *model.GithubEvent, raw []byte) error
	FindIssueKey(ctx context.Context, githubIssueID int64) (string, error)
	FindCommentID(ctx context.Context, githubCommentID int64) (string, error)
	InsertIssueMapping(ctx context.Context, githubIssueID int64, jiraIssueKey string) error
	InsertCommentMapping(ctx context.Context, githubCommentID int64, jiraCommentID string) error
}

// DB implements Store on a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

func NewDB(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

// RecordEvent appends one audit entry per inbound webhook call. Entries are
// write-once; retention is an external concern.
func (d *DB) RecordEvent(ctx context.Context, ev *model.GithubEvent, raw []byte) error {
	_, err := d.pool.Exec(ctx,
		`INSERT INTO github_event (event_type, event_action, received_at, raw_body)
		 VALUES ($1, $2, now(), $3)`,
		string(ev.Type.Kind), string(ev.Type.Action), raw)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

func (d *DB) FindIssueKey(ctx context.Context, githubIssueID int64) (string, error) {
	var key string
	err := d.pool.QueryRow(ctx,
		`SELECT jira_issue_key FROM issue_map WHERE github_issue_id = $1`,
		githubIssueID).Scan(&key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find issue key: %w", err)
	}
	return key, nil
}

func (d *DB) FindCommentID(ctx context.Context, githubCommentID int64) (string, error) {
	var id string
	err := d.pool.QueryRow(ctx,
		`SELECT jira_comment_id FROM comment_map WHERE github_comment_id = $1`,
		githubCommentID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find comment id: %w", err)
	}
	return id, nil
}

// InsertIssueMapping records a GitHub issue id -> Jira issue key
// correspondence. The single-column primary key makes this insert-if-absent:
// a losing concurrent writer gets ErrAlreadyMapped instead of a second row.
func (d *DB) InsertIssueMapping(ctx context.Context, githubIssueID int64, jiraIssueKey string) error {
	tag, err := d.pool.Exec(ctx,
		`INSERT INTO issue_map (github_issue_id, jira_issue_key)
		 VALUES ($1, $2)
		 ON CONFLICT (github_issue_id) DO NOTHING`,
		githubIssueID, jiraIssueKey)
	if err != nil {
		return fmt.Errorf("insert issue mapping: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyMapped
	}
	return nil
}

func (d *DB) InsertCommentMapping(ctx context.Context, githubCommentID int64, jiraCommentID string) error {
	tag, err := d.pool.Exec(ctx,
		`INSERT INTO comment_map (github_comment_id, jira_comment_id)
		 VALUES ($1, $2)
		 ON CONFLICT (github_comment_id) DO NOTHING`,
		githubCommentID, jiraCommentID)
	if err != nil {
		return fmt.Errorf("insert comment mapping: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyMapped
	}
	return nil
}
