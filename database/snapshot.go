package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"stockdesk/model"
)

type snapshotRow struct {
	ID          string         `db:"id"`
	Position    int            `db:"position"`
	Name        string         `db:"name"`
	Category    string         `db:"category"`
	Stock       float64        `db:"stock"`
	Imported    bool           `db:"imported"`
	LastUpdated sql.NullString `db:"last_updated"`
	Payload     string         `db:"payload"`
}

// SaveSnapshot replaces the stored working set with products.
func SaveSnapshot(db *sqlx.DB, products []model.Product, takenAt time.Time) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("SaveSnapshot: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM product_snapshot`); err != nil {
		return fmt.Errorf("SaveSnapshot: clear: %w", err)
	}

	const q = `
		INSERT INTO product_snapshot (id, position, name, category, stock, imported, last_updated, payload)
		VALUES (:id, :position, :name, :category, :stock, :imported, :last_updated, :payload)`
	for i, p := range products {
		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("SaveSnapshot: encode product %s: %w", p.ID, err)
		}
		row := snapshotRow{
			ID:       p.ID.String(),
			Position: i,
			Name:     p.Name,
			Category: p.Category,
			Stock:    p.Stock,
			Imported: p.Imported,
			Payload:  string(payload),
		}
		if !p.LastUpdated.IsZero() {
			row.LastUpdated = sql.NullString{String: p.LastUpdated.UTC().Format(time.RFC3339), Valid: true}
		}
		if _, err := tx.NamedExec(q, row); err != nil {
			return fmt.Errorf("SaveSnapshot: insert product %s: %w", p.ID, err)
		}
	}

	const meta = `
		INSERT INTO snapshot_meta (key, value) VALUES ('taken_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(meta, takenAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("SaveSnapshot: meta: %w", err)
	}
	return tx.Commit()
}

// LoadSnapshot returns the stored working set in its original order. It
// returns nil products when no snapshot has been taken yet.
func LoadSnapshot(db *sqlx.DB) ([]model.Product, time.Time, error) {
	var takenAtRaw string
	err := db.Get(&takenAtRaw, `SELECT value FROM snapshot_meta WHERE key = 'taken_at'`)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("LoadSnapshot: meta: %w", err)
	}
	takenAt, _ := time.Parse(time.RFC3339Nano, takenAtRaw)

	var rows []snapshotRow
	if err := db.Select(&rows, `SELECT id, position, name, category, stock, imported, last_updated, payload FROM product_snapshot ORDER BY position`); err != nil {
		return nil, time.Time{}, fmt.Errorf("LoadSnapshot: select: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		var p model.Product
		if err := json.Unmarshal([]byte(row.Payload), &p); err != nil {
			return nil, time.Time{}, fmt.Errorf("LoadSnapshot: decode product %s: %w", row.ID, err)
		}
		products = append(products, p)
	}
	return products, takenAt, nil
}

// CountSnapshotByCategory returns how many snapshot products fall in each category.
func CountSnapshotByCategory(db *sqlx.DB) (map[string]int, error) {
	var rows []struct {
		Category string `db:"category"`
		Count    int    `db:"n"`
	}
	if err := db.Select(&rows, `SELECT category, COUNT(*) AS n FROM product_snapshot GROUP BY category`); err != nil {
		return nil, fmt.Errorf("CountSnapshotByCategory: %w", err)
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Category] = r.Count
	}
	return out, nil
}
