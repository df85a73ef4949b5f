package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/storage"
	"github.com/louisbranch/toolatlas/internal/platform/id"
)

// PutWorkflow inserts a workflow or replaces the title and steps of the
// workflow with the same slug.
func (s *Store) PutWorkflow(ctx context.Context, workflow directory.Workflow) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	workflow, err := directory.ValidateWorkflow(workflow)
	if err != nil {
		return err
	}
	title, err := encodeLocalized(workflow.Title)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put workflow: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var workflowID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM workflows WHERE slug = ?`, workflow.Slug).Scan(&workflowID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		workflowID = workflow.ID
		if workflowID == "" {
			if workflowID, err = id.NewID(); err != nil {
				return fmt.Errorf("generate workflow id: %w", err)
			}
		}
	case err != nil:
		return fmt.Errorf("lookup workflow: %w", err)
	}

	now := toMillis(s.timestamp())
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO workflows (id, slug, title_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   title_json = excluded.title_json,
		   updated_at = excluded.updated_at`,
		workflowID, workflow.Slug, title, now, now,
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put workflow: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM workflow_steps WHERE workflow_id = ?`, workflowID); err != nil {
		return fmt.Errorf("clear workflow steps: %w", err)
	}
	for _, step := range workflow.Steps {
		note, err := encodeLocalized(step.Note)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO workflow_steps (workflow_id, position, tool_slug, note_json) VALUES (?, ?, ?, ?)`,
			workflowID, step.Position, step.ToolSlug, note,
		); err != nil {
			return fmt.Errorf("insert workflow step: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put workflow: %w", err)
	}
	return nil
}

// GetWorkflow returns one workflow with its steps.
func (s *Store) GetWorkflow(ctx context.Context, slug string) (directory.Workflow, error) {
	if err := s.ready(ctx); err != nil {
		return directory.Workflow{}, err
	}
	var workflow directory.Workflow
	var title string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, slug, title_json FROM workflows WHERE slug = ?`,
		strings.TrimSpace(slug),
	).Scan(&workflow.ID, &workflow.Slug, &title)
	if errors.Is(err, sql.ErrNoRows) {
		return directory.Workflow{}, storage.ErrNotFound
	}
	if err != nil {
		return directory.Workflow{}, fmt.Errorf("get workflow: %w", err)
	}
	if workflow.Title, err = decodeLocalized(title); err != nil {
		return directory.Workflow{}, err
	}
	steps, err := s.loadSteps(ctx, []string{workflow.ID})
	if err != nil {
		return directory.Workflow{}, err
	}
	workflow.Steps = steps[workflow.ID]
	return workflow, nil
}

// ListWorkflows returns every workflow ordered by slug.
func (s *Store) ListWorkflows(ctx context.Context) ([]directory.Workflow, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, slug, title_json FROM workflows ORDER BY slug ASC`)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []directory.Workflow
	var ids []string
	for rows.Next() {
		var workflow directory.Workflow
		var title string
		if err := rows.Scan(&workflow.ID, &workflow.Slug, &title); err != nil {
			return nil, fmt.Errorf("list workflows: %w", err)
		}
		if workflow.Title, err = decodeLocalized(title); err != nil {
			return nil, err
		}
		workflows = append(workflows, workflow)
		ids = append(ids, workflow.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}

	steps, err := s.loadSteps(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range workflows {
		workflows[i].Steps = steps[workflows[i].ID]
	}
	return workflows, nil
}

func (s *Store) loadSteps(ctx context.Context, workflowIDs []string) (map[string][]directory.WorkflowStep, error) {
	out := make(map[string][]directory.WorkflowStep, len(workflowIDs))
	if len(workflowIDs) == 0 {
		return out, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT workflow_id, position, tool_slug, note_json FROM workflow_steps
		 WHERE workflow_id IN (`+placeholders(len(workflowIDs))+`)
		 ORDER BY workflow_id, position`,
		stringArgs(workflowIDs)...,
	)
	if err != nil {
		return nil, fmt.Errorf("load workflow steps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var workflowID, note string
		var step directory.WorkflowStep
		if err := rows.Scan(&workflowID, &step.Position, &step.ToolSlug, &note); err != nil {
			return nil, fmt.Errorf("load workflow steps: %w", err)
		}
		if step.Note, err = decodeLocalized(note); err != nil {
			return nil, err
		}
		out[workflowID] = append(out[workflowID], step)
	}
	return out, rows.Err()
}
