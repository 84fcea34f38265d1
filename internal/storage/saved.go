package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/meur/fitforge/internal/models"
)

// --- Saved fits ---

// SaveFit stores a fit summary under key, replacing any previous value.
func (s *Store) SaveFit(ctx context.Context, key string, summary models.FitSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	now := time.Now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_fits (id, key, summary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET summary = excluded.summary, updated_at = excluded.updated_at
	`, uuid.New().String(), key, string(data), now, now)
	return err
}

// GetSavedFit returns the summary saved under key
func (s *Store) GetSavedFit(ctx context.Context, key string) (*models.FitSummary, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT summary FROM saved_fits WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary models.FitSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListSavedFits returns every saved summary, most recently saved first
func (s *Store) ListSavedFits(ctx context.Context) ([]models.FitSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT summary FROM saved_fits ORDER BY updated_at DESC, key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.FitSummary{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var summary models.FitSummary
		if err := json.Unmarshal([]byte(data), &summary); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// DeleteSavedFit removes the summary saved under key
func (s *Store) DeleteSavedFit(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_fits WHERE key = ?`, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
