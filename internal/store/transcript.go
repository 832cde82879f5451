package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Transcript represents an accepted sentence stored in the database.
type Transcript struct {
	ID        string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TranscriptRepository provides CRUD operations for transcripts.
type TranscriptRepository struct {
	db *sql.DB
}

// Transcripts returns the transcript repository for this store.
func (s *Store) Transcripts() *TranscriptRepository {
	return &TranscriptRepository{db: s.db}
}

// Create inserts a new transcript into the database.
func (r *TranscriptRepository) Create(t *Transcript) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO transcripts (id, text, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		t.ID, t.Text, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// GetByID retrieves a transcript by its ID.
func (r *TranscriptRepository) GetByID(id string) (*Transcript, error) {
	t := &Transcript{}

	err := r.db.QueryRow(
		`SELECT id, text, created_at, updated_at FROM transcripts WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.Text, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

// List retrieves all transcripts from the database, newest first.
func (r *TranscriptRepository) List() ([]*Transcript, error) {
	rows, err := r.db.Query(
		`SELECT id, text, created_at, updated_at FROM transcripts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcripts []*Transcript
	for rows.Next() {
		t := &Transcript{}
		if err := rows.Scan(&t.ID, &t.Text, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		transcripts = append(transcripts, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transcripts, nil
}

// Update updates the text of an existing transcript.
func (r *TranscriptRepository) Update(t *Transcript) error {
	t.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE transcripts SET text = ?, updated_at = ? WHERE id = ?`,
		t.Text, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a transcript from the database by its ID.
func (r *TranscriptRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM transcripts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
