// Pitchlake - Match Tracking Analytics Warehouse
// Copyright 2026 Pitchlake contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitchlake/pitchlake

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pitchlake/pitchlake/internal/logging"
	"github.com/pitchlake/pitchlake/internal/schema"
	"github.com/pitchlake/pitchlake/internal/table"
)

// insertBatchRows caps how many rows share one multi-row INSERT. Wide fact
// tables approach 80 columns, so the batch keeps the bind-parameter count
// in the low tens of thousands.
const insertBatchRows = 250

// Overwrite enforces the registered schema on t, then transactionally
// replaces the stored snapshot of the table. Shape differences are logged
// before writing (and fail the write in strict mode). A table that enforces
// to zero rows is not written; the prior snapshot, if any, is left in place
// and the skip is reported explicitly. Returns the number of rows written.
func (s *Store) Overwrite(ctx context.Context, name string, t *table.Table) (int, error) {
	return s.write(ctx, name, t, true)
}

// Append is Overwrite without dropping the prior snapshot: rows are added to
// the existing table (created from the registry if absent).
func (s *Store) Append(ctx context.Context, name string, t *table.Table) (int, error) {
	return s.write(ctx, name, t, false)
}

func (s *Store) write(ctx context.Context, name string, t *table.Table, replace bool) (int, error) {
	var (
		enforced *table.Table
		report   *table.ShapeReport
		err      error
	)
	if s.strict {
		enforced, report, err = table.EnforceStrict(t, name)
	} else {
		enforced, report, err = table.Enforce(t, name)
	}
	if err != nil {
		return 0, err
	}
	if !report.Clean() {
		logging.Warn().
			Str("table", name).
			Strs("missing_columns", report.Missing).
			Strs("extra_columns", report.Dropped).
			Msg("Table shape differs from registered schema: " + report.String())
	}

	if enforced.Len() == 0 {
		logging.Info().Str("table", name).Msg("No rows to write, table skipped")
		return 0, nil
	}

	sch := schema.MustGet(name)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin write of %s: %w", name, err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	ddl := createTableSQL(sch, replace)
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return 0, fmt.Errorf("create table %s: %w", name, err)
	}

	if err := insertRows(ctx, tx, sch, enforced); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit write of %s: %w", name, err)
	}

	logging.Info().Str("table", name).Int("rows", enforced.Len()).Msg("Table written")
	return enforced.Len(), nil
}

// Read returns the full current snapshot of a registered table, with values
// normalized back to the registry's semantic types. ErrNoTable is returned
// when the table has never been written.
func (s *Store) Read(ctx context.Context, name string) (*table.Table, error) {
	sch, err := schema.Get(name)
	if err != nil {
		return nil, err
	}

	exists, err := s.tableExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNoTable, name)
	}

	cols := make([]string, len(sch.Fields))
	for i, f := range sch.Fields {
		cols[i] = quoteIdent(f.Name)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), quoteIdent(name))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", name, err)
	}
	defer closeQuietly(rows)

	out := table.New(sch.Columns()...)
	for rows.Next() {
		targets := scanTargets(sch)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan row of %s: %w", name, err)
		}
		out.Append(scanValues(sch, targets)...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", name, err)
	}
	return out, nil
}

// ReadOrEmpty is Read with a missing table downgraded to an empty table.
// Used where an absent upstream table means "no rows contributed".
func (s *Store) ReadOrEmpty(ctx context.Context, name string) (*table.Table, error) {
	t, err := s.Read(ctx, name)
	if errors.Is(err, ErrNoTable) {
		logging.Warn().Str("table", name).Msg("Source table absent, treating as empty")
		sch := schema.MustGet(name)
		return table.New(sch.Columns()...), nil
	}
	return t, err
}

// ExportParquet writes the current snapshot of a table to a Parquet file
// via DuckDB's COPY TO.
func (s *Store) ExportParquet(ctx context.Context, name, path string) error {
	if _, err := schema.Get(name); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create export directory %s: %w", dir, err)
		}
	}
	stmt := fmt.Sprintf("COPY (SELECT * FROM %s) TO '%s' (FORMAT PARQUET)",
		quoteIdent(name), strings.ReplaceAll(path, "'", "''"))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("export %s to %s: %w", name, path, err)
	}
	logging.Info().Str("table", name).Str("path", path).Msg("Parquet export written")
	return nil
}

// tableExists reports whether the named table exists in the main schema.
func (s *Store) tableExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM information_schema.tables WHERE table_name = ?", name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", name, err)
	}
	return count > 0, nil
}

// createTableSQL builds the DDL for a registered schema. Replace drops any
// prior snapshot atomically via CREATE OR REPLACE.
func createTableSQL(sch schema.Schema, replace bool) string {
	var b strings.Builder
	if replace {
		b.WriteString("CREATE OR REPLACE TABLE ")
	} else {
		b.WriteString("CREATE TABLE IF NOT EXISTS ")
	}
	b.WriteString(quoteIdent(sch.Name))
	b.WriteString(" (")
	for i, f := range sch.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(f.Name))
		b.WriteByte(' ')
		b.WriteString(f.Type.DuckDB())
	}
	b.WriteString(")")
	return b.String()
}

// insertRows writes all rows of an enforced table in multi-row batches.
func insertRows(ctx context.Context, tx *sql.Tx, sch schema.Schema, t *table.Table) error {
	cols := make([]string, len(sch.Fields))
	for i, f := range sch.Fields {
		cols[i] = quoteIdent(f.Name)
	}
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", quoteIdent(sch.Name), strings.Join(cols, ", "))
	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(sch.Fields)), ", ") + ")"

	for start := 0; start < t.Len(); start += insertBatchRows {
		end := start + insertBatchRows
		if end > t.Len() {
			end = t.Len()
		}

		placeholders := make([]string, 0, end-start)
		args := make([]any, 0, (end-start)*len(sch.Fields))
		for i := start; i < end; i++ {
			placeholders = append(placeholders, rowPlaceholder)
			args = append(args, t.Row(i)...)
		}

		if _, err := tx.ExecContext(ctx, prefix+strings.Join(placeholders, ", "), args...); err != nil {
			return err
		}
	}
	return nil
}

// scanTargets builds one sql.Null* scan destination per schema field.
func scanTargets(sch schema.Schema) []any {
	targets := make([]any, len(sch.Fields))
	for i, f := range sch.Fields {
		switch f.Type {
		case schema.TypeInt16, schema.TypeInt32, schema.TypeInt64:
			targets[i] = &sql.NullInt64{}
		case schema.TypeFloat32, schema.TypeFloat64:
			targets[i] = &sql.NullFloat64{}
		case schema.TypeBool:
			targets[i] = &sql.NullBool{}
		case schema.TypeDate, schema.TypeTimestamp:
			targets[i] = &sql.NullTime{}
		default:
			targets[i] = &sql.NullString{}
		}
	}
	return targets
}

// scanValues converts scanned sql.Null* targets back to the registry's
// semantic value representation, nil for SQL NULL.
func scanValues(sch schema.Schema, targets []any) []any {
	row := make([]any, len(sch.Fields))
	for i, f := range sch.Fields {
		switch v := targets[i].(type) {
		case *sql.NullInt64:
			if v.Valid {
				switch f.Type {
				case schema.TypeInt16:
					row[i] = int16(v.Int64)
				case schema.TypeInt32:
					row[i] = int32(v.Int64)
				default:
					row[i] = v.Int64
				}
			}
		case *sql.NullFloat64:
			if v.Valid {
				if f.Type == schema.TypeFloat32 {
					row[i] = float32(v.Float64)
				} else {
					row[i] = v.Float64
				}
			}
		case *sql.NullBool:
			if v.Valid {
				row[i] = v.Bool
			}
		case *sql.NullTime:
			if v.Valid {
				row[i] = v.Time.UTC()
			}
		case *sql.NullString:
			if v.Valid {
				row[i] = v.String
			}
		}
	}
	return row
}

// quoteIdent double-quotes an identifier so reserved words like "group" are
// valid column names.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
