package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Sample represents a recorded labeled feature vector stored in the database.
type Sample struct {
	ID        int64           `json:"id"`
	Label     string          `json:"label"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// SampleRepository provides CRUD operations for recorded training samples.
type SampleRepository struct {
	db *sql.DB
}

// Samples returns the sample repository for this store.
func (s *Store) Samples() *SampleRepository {
	return &SampleRepository{db: s.db}
}

// Create inserts multiple samples for a label in a single transaction.
func (r *SampleRepository) Create(label string, samples []json.RawMessage) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO samples (label, data) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, data := range samples {
		if _, err := stmt.Exec(label, string(data)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListData retrieves the raw data of all samples, oldest first. This is
// the training input for classifier.Trainer.
func (r *SampleRepository) ListData() ([]json.RawMessage, error) {
	rows, err := r.db.Query(`SELECT data FROM samples ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(data))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// GetByLabel retrieves all samples recorded for a given label.
func (r *SampleRepository) GetByLabel(label string) ([]Sample, error) {
	rows, err := r.db.Query(
		`SELECT id, label, data, created_at FROM samples WHERE label = ? ORDER BY id`,
		label,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		var data string
		if err := rows.Scan(&s.ID, &s.Label, &data, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Data = json.RawMessage(data)
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// DeleteByLabel removes all samples for a given label.
func (r *SampleRepository) DeleteByLabel(label string) error {
	_, err := r.db.Exec(`DELETE FROM samples WHERE label = ?`, label)
	return err
}
