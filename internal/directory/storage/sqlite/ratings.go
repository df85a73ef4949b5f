package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/toolatlas/internal/directory"
	"github.com/louisbranch/toolatlas/internal/directory/storage"
	apperrors "github.com/louisbranch/toolatlas/internal/platform/errors"
)

// PutRating stores a visitor's score, replacing any earlier score the same
// visitor gave the tool.
func (s *Store) PutRating(ctx context.Context, rating directory.Rating) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := directory.ValidateScore(rating.Score); err != nil {
		return err
	}
	rating.VisitorID = strings.TrimSpace(rating.VisitorID)
	if rating.VisitorID == "" {
		return apperrors.New(apperrors.CodeRatingVisitorEmpty, "visitor id is required")
	}
	if strings.TrimSpace(rating.ToolID) == "" {
		return fmt.Errorf("tool id is required")
	}
	createdAt := rating.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.timestamp()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO ratings (tool_id, visitor_id, score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (tool_id, visitor_id) DO UPDATE SET
		   score = excluded.score,
		   updated_at = excluded.updated_at`,
		rating.ToolID, rating.VisitorID, rating.Score, toMillis(createdAt), toMillis(createdAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("put rating: %w", err)
	}
	return nil
}

// RatingSummaries returns count and average per tool ID. Tools without
// ratings are absent from the map.
func (s *Store) RatingSummaries(ctx context.Context, toolIDs []string) (map[string]directory.RatingSummary, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	out := make(map[string]directory.RatingSummary, len(toolIDs))
	if len(toolIDs) == 0 {
		return out, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT tool_id, COUNT(*), AVG(score) FROM ratings
		 WHERE tool_id IN (`+placeholders(len(toolIDs))+`)
		 GROUP BY tool_id`,
		stringArgs(toolIDs)...,
	)
	if err != nil {
		return nil, fmt.Errorf("rating summaries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var toolID string
		var summary directory.RatingSummary
		if err := rows.Scan(&toolID, &summary.Count, &summary.Average); err != nil {
			return nil, fmt.Errorf("rating summaries: %w", err)
		}
		out[toolID] = summary
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rating summaries: %w", err)
	}
	return out, nil
}
