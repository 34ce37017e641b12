// SPDX-License-Identifier: MIT

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelgate/reelgate/internal/catalog"
)

// CatalogStore implements catalog.Store over SQLite.
type CatalogStore struct {
	db *sql.DB
}

// NewCatalogStore creates a CatalogStore.
func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

const variantColumns = "id, title_id, file_path, remote_url, mime_type, quality, trailer, created_at"

func scanVariant(row interface{ Scan(...any) error }) (catalog.Variant, error) {
	var v catalog.Variant
	err := row.Scan(&v.ID, &v.TitleID, &v.FilePath, &v.RemoteURL, &v.MimeType, &v.Quality, &v.Trailer, &v.CreatedAt)
	return v, err
}

// TitleExists reports whether the title row exists.
func (s *CatalogStore) TitleExists(ctx context.Context, titleID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM titles WHERE id = ?", titleID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: title exists: %w", err)
	}
	return true, nil
}

// VariantByID fetches a single media variant.
func (s *CatalogStore) VariantByID(ctx context.Context, id int64) (catalog.Variant, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+variantColumns+" FROM media_assets WHERE id = ?", id)
	v, err := scanVariant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Variant{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Variant{}, fmt.Errorf("sqlite: variant by id: %w", err)
	}
	return v, nil
}

// VariantsByTitle lists every rendition of a title, trailers last, newest
// first within a quality.
func (s *CatalogStore) VariantsByTitle(ctx context.Context, titleID int64) ([]catalog.Variant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+variantColumns+" FROM media_assets WHERE title_id = ? ORDER BY trailer, quality, created_at DESC",
		titleID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: variants by title: %w", err)
	}
	defer rows.Close()

	var out []catalog.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan variant: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: variants by title: %w", err)
	}
	return out, nil
}
