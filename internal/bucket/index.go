package bucket

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    class INTEGER NOT NULL,
    pipeline TEXT NOT NULL DEFAULT '',
    step TEXT NOT NULL DEFAULT '',
    subject TEXT NOT NULL DEFAULT '',
    filename TEXT NOT NULL,
    ext TEXT NOT NULL DEFAULT '',
    rel_path TEXT NOT NULL UNIQUE
);
CREATE INDEX IF NOT EXISTS idx_entries_lookup ON entries (class, pipeline, step);
`

func (b *Bucket) applySchema(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply index schema: %w", err)
	}
	return nil
}

func (b *Bucket) replaceIndex(ctx context.Context, entries []Entry) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin index update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO entries (class, pipeline, step, subject, filename, ext, rel_path)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare index insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, int(e.Class), e.Pipeline, e.Step, e.Subject, e.Filename, e.Ext, e.RelPath); err != nil {
			return fmt.Errorf("insert index entry %q: %w", e.RelPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index update: %w", err)
	}
	return nil
}

// Query returns indexed entries for a dataclass matching the filter, ordered
// by relative path. The Regex field matches against filenames.
func (b *Bucket) Query(ctx context.Context, class DataClass, filter Filter) ([]Entry, error) {
	query := `SELECT id, class, pipeline, step, subject, filename, ext, rel_path FROM entries WHERE class = ?`
	args := []any{int(class)}

	if pipeline := strings.TrimSpace(filter.Pipeline); pipeline != "" {
		query += ` AND pipeline = ?`
		args = append(args, pipeline)
	}
	if step := filter.stepValue(); step != "" {
		query += ` AND step = ?`
		args = append(args, step)
	}
	if ext := strings.TrimSpace(filter.Ext); ext != "" {
		query += ` AND ext = ?`
		args = append(args, ext)
	}
	query += ` ORDER BY rel_path`

	var re *regexp.Regexp
	if strings.TrimSpace(filter.Regex) != "" {
		compiled, err := regexp.Compile(filter.Regex)
		if err != nil {
			return nil, fmt.Errorf("compile filter regex: %w", err)
		}
		re = compiled
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			classInt int
		)
		if err := rows.Scan(&e.ID, &classInt, &e.Pipeline, &e.Step, &e.Subject, &e.Filename, &e.Ext, &e.RelPath); err != nil {
			return nil, fmt.Errorf("scan index entry: %w", err)
		}
		e.Class = DataClass(classInt)
		if re != nil && !re.MatchString(e.Filename) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (b *Bucket) classCounts(ctx context.Context) (map[DataClass]int, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT class, COUNT(1) FROM entries GROUP BY class`)
	if err != nil {
		return nil, fmt.Errorf("count index entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[DataClass]int)
	for rows.Next() {
		var classInt, count int
		if err := rows.Scan(&classInt, &count); err != nil {
			return nil, err
		}
		counts[DataClass(classInt)] = count
	}
	return counts, rows.Err()
}
