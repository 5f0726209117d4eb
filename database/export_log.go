package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockdesk/model"
)

// RecordExport appends an entry to the export log and returns it.
func RecordExport(db *sqlx.DB, filename, scope, format string, rows int, at time.Time) (model.ExportLogEntry, error) {
	entry := model.ExportLogEntry{
		ID:        uuid.NewString(),
		Filename:  filename,
		Scope:     scope,
		Format:    format,
		Rows:      rows,
		CreatedAt: at.UTC().Format(time.RFC3339),
	}
	const q = `
		INSERT INTO export_log (id, filename, scope, format, row_count, created_at)
		VALUES (:id, :filename, :scope, :format, :row_count, :created_at)`
	if _, err := db.NamedExec(q, entry); err != nil {
		return model.ExportLogEntry{}, fmt.Errorf("RecordExport (%s): %w", filename, err)
	}
	return entry, nil
}

// RecentExports lists the newest export log entries first.
func RecentExports(db *sqlx.DB, limit int) ([]model.ExportLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []model.ExportLogEntry
	err := db.Select(&entries, `
		SELECT id, filename, scope, format, row_count, created_at
		FROM export_log
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("RecentExports: %w", err)
	}
	return entries, nil
}
