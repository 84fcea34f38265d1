package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/meur/fitforge/internal/models"
)

// --- SDE types and groups ---

// BulkCreateGroups replaces groups in a transaction
func (s *Store) BulkCreateGroups(ctx context.Context, groups []models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO groups (id, name, lower, category)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range groups {
		if _, err := stmt.ExecContext(ctx, g.ID, g.Name, models.Lowered(g.Name, g.Lower), g.Category); err != nil {
			return fmt.Errorf("group %d: %w", g.ID, err)
		}
	}
	return tx.Commit()
}

// BulkCreateTypes replaces types in a transaction
func (s *Store) BulkCreateTypes(ctx context.Context, types []models.Type) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO types (id, name, lower, group_id)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range types {
		if _, err := stmt.ExecContext(ctx, t.ID, t.Name, models.Lowered(t.Name, t.Lower), t.Group); err != nil {
			return fmt.Errorf("type %d: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// LoadCatalog reads the whole type and group tables
func (s *Store) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	c := &models.Catalog{
		Types:  map[int]models.Type{},
		Groups: map[int]models.Group{},
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, lower, category FROM groups`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Lower, &g.Category); err != nil {
			rows.Close()
			return nil, err
		}
		c.Groups[g.ID] = g
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, name, lower, group_id FROM types`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t models.Type
		if err := rows.Scan(&t.ID, &t.Name, &t.Lower, &t.Group); err != nil {
			return nil, err
		}
		c.Types[t.ID] = t
	}
	return c, rows.Err()
}

// GetNames returns name info for the given type ids. Unknown ids are left
// out of the result.
func (s *Store) GetNames(ctx context.Context, ids []int) (models.Names, error) {
	names := models.Names{}
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.group_id, g.name, g.category, ts.slot
		FROM types t
		JOIN groups g ON g.id = t.group_id
		LEFT JOIN type_slots ts ON ts.type_id = t.id
		WHERE t.id IN (`+placeholders(len(ids))+`)
	`, intArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var info models.NameInfo
		var category int
		var slot sql.NullString
		if err := rows.Scan(&info.ID, &info.Name, &info.Group, &info.GroupName, &category, &slot); err != nil {
			return nil, err
		}
		info.Category = models.Group{Category: category}.CategoryName()
		if slot.Valid {
			info.Slot = models.Slot(slot.String)
		}
		names[info.ID] = info
	}
	return names, rows.Err()
}

// searchCategories maps group categories to search result types
var searchCategories = map[int]string{
	models.GroupCategoryShip:      "ship",
	models.GroupCategoryModule:    "item",
	models.GroupCategoryCharge:    "item",
	models.GroupCategorySubsystem: "item",
}

// Search finds groups and types whose lowercased name contains every word
// of term. term must already be lowercased.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]models.SearchResult, error) {
	words := strings.Fields(term)
	if len(words) == 0 {
		return nil, nil
	}
	conds := make([]string, len(words))
	args := make([]interface{}, 0, len(words)+1)
	for i, w := range words {
		conds[i] = "lower LIKE ? ESCAPE '\\'"
		args = append(args, "%"+escapeLike(w)+"%")
	}
	where := strings.Join(conds, " AND ")

	var results []models.SearchResult

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM groups WHERE `+where+` ORDER BY name LIMIT ?`,
		append(args, limit)...)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		r := models.SearchResult{Type: "group"}
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT t.id, t.name, g.category FROM types t
		JOIN groups g ON g.id = t.group_id
		WHERE `+strings.ReplaceAll(where, "lower", "t.lower")+`
		ORDER BY t.name LIMIT ?
	`, append(args, limit)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() && len(results) < limit {
		var r models.SearchResult
		var category int
		if err := rows.Scan(&r.ID, &r.Name, &category); err != nil {
			return nil, err
		}
		typ, ok := searchCategories[category]
		if !ok {
			continue
		}
		r.Type = typ
		results = append(results, r)
	}
	return results, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
