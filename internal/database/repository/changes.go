package repository

import (
	"context"
)

// ChangeRepo appends to and reads the setting change journal.
type ChangeRepo struct {
	db DBTX
}

func NewChangeRepo(db DBTX) *ChangeRepo { return &ChangeRepo{db: db} }

func (r *ChangeRepo) Add(ctx context.Context, c Change) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO setting_changes(id, key, old_value, new_value, changed_at)
	VALUES (?, ?, ?, ?, ?);
	`, c.ID, c.Key, c.OldValue, c.NewValue, c.ChangedAt)
	return err
}

// Recent returns up to limit changes, newest first.
func (r *ChangeRepo) Recent(ctx context.Context, limit int) ([]Change, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, key, old_value, new_value, changed_at
	FROM setting_changes
	ORDER BY changed_at DESC, rowid DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Change
	for rows.Next() {
		var c Change
		if err := rows.Scan(&c.ID, &c.Key, &c.OldValue, &c.NewValue, &c.ChangedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
