package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/meur/fitforge/internal/models"
)

// --- Fits ---

// CreateFit stores a fit together with its query items and the slot each
// of its types was seen in. An existing fit with the same killmail is
// replaced.
func (s *Store) CreateFit(ctx context.Context, f *models.StoredFit, slots map[int]models.Slot) error {
	items, err := json.Marshal(f.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fit_items WHERE killmail = ?`, f.Killmail); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO fits (killmail, ship, cost, items)
		VALUES (?, ?, ?, ?)
	`, f.Killmail, f.Ship, f.Cost, string(items)); err != nil {
		return err
	}
	for _, id := range f.QueryItems {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO fit_items (killmail, type_id) VALUES (?, ?)`, f.Killmail, id); err != nil {
			return err
		}
	}
	for id, slot := range slots {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO type_slots (type_id, slot) VALUES (?, ?)`, id, string(slot)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetFit returns a fit by killmail id
func (s *Store) GetFit(ctx context.Context, killmail int64) (*models.StoredFit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT killmail, ship, cost, items, created_at FROM fits WHERE killmail = ?
	`, killmail)
	f, err := scanFit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadQueryItems(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// FindFits returns the newest fits containing every one of the given type
// ids. With no ids it returns the newest fits overall.
func (s *Store) FindFits(ctx context.Context, ids []int, limit int) ([]models.StoredFit, error) {
	var rows *sql.Rows
	var err error

	if len(ids) == 0 {
		rows, err = s.db.QueryContext(ctx, `
			SELECT killmail, ship, cost, items, created_at
			FROM fits ORDER BY killmail DESC LIMIT ?
		`, limit)
	} else {
		args := append(intArgs(ids), len(ids), limit)
		rows, err = s.db.QueryContext(ctx, `
			SELECT killmail, ship, cost, items, created_at
			FROM fits WHERE killmail IN (
				SELECT killmail FROM fit_items
				WHERE type_id IN (`+placeholders(len(ids))+`)
				GROUP BY killmail HAVING COUNT(DISTINCT type_id) = ?
			)
			ORDER BY killmail DESC LIMIT ?
		`, args...)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fits []models.StoredFit
	for rows.Next() {
		f, err := scanFit(rows)
		if err != nil {
			return nil, err
		}
		fits = append(fits, *f)
	}
	return fits, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFit(row scanner) (*models.StoredFit, error) {
	var f models.StoredFit
	var items string
	if err := row.Scan(&f.Killmail, &f.Ship, &f.Cost, &items, &f.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(items), &f.Items); err != nil {
		return nil, fmt.Errorf("fit %d items: %w", f.Killmail, err)
	}
	return &f, nil
}

func (s *Store) loadQueryItems(ctx context.Context, f *models.StoredFit) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type_id FROM fit_items WHERE killmail = ? ORDER BY type_id`, f.Killmail)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return err
		}
		f.QueryItems = append(f.QueryItems, id)
	}
	return rows.Err()
}
