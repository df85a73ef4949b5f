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

// PutCategory inserts a category or replaces the names and position of the
// category with the same slug.
func (s *Store) PutCategory(ctx context.Context, category directory.Category) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	category, err := directory.ValidateCategory(category)
	if err != nil {
		return err
	}
	if category.ID == "" {
		if category.ID, err = id.NewID(); err != nil {
			return fmt.Errorf("generate category id: %w", err)
		}
	}
	names, err := encodeLocalized(category.Names)
	if err != nil {
		return err
	}
	now := toMillis(s.timestamp())
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO categories (id, slug, names_json, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (slug) DO UPDATE SET
		   names_json = excluded.names_json,
		   position = excluded.position,
		   updated_at = excluded.updated_at`,
		category.ID, category.Slug, names, category.Position, now, now,
	)
	if err != nil {
		return fmt.Errorf("put category: %w", err)
	}
	return nil
}

// GetCategory returns one category by slug.
func (s *Store) GetCategory(ctx context.Context, slug string) (directory.Category, error) {
	if err := s.ready(ctx); err != nil {
		return directory.Category{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, slug, names_json, position FROM categories WHERE slug = ?`,
		strings.TrimSpace(slug),
	)
	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return directory.Category{}, storage.ErrNotFound
	}
	if err != nil {
		return directory.Category{}, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// ListCategories returns every category ordered by position then slug.
func (s *Store) ListCategories(ctx context.Context) ([]directory.Category, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, slug, names_json, position FROM categories ORDER BY position ASC, slug ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []directory.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (directory.Category, error) {
	var category directory.Category
	var names string
	if err := row.Scan(&category.ID, &category.Slug, &names, &category.Position); err != nil {
		return directory.Category{}, err
	}
	decoded, err := decodeLocalized(names)
	if err != nil {
		return directory.Category{}, err
	}
	category.Names = decoded
	return category, nil
}
