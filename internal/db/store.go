package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicateNote = errors.New("note already recorded for this record and email")
	ErrUnknownRecord = errors.New("record not found")
)

// Record is a rateable item.
type Record struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

// Note is one user's rating of a record.
type Note struct {
	RecordID string
	Email    string
	Note     int
}

// Store is the SQL-backed notes store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// AddRecord inserts a record with a fresh id.
func (s *Store) AddRecord(ctx context.Context, title string) (Record, error) {
	r := Record{ID: uuid.NewString(), Title: title, CreatedAt: s.now()}
	_, err := s.db.ExecContext(ctx, `INSERT INTO records (id,title,created_at) VALUES ($1,$2,$3)`,
		r.ID, r.Title, r.CreatedAt.UnixNano())
	if err != nil {
		return Record{}, err
	}
	return r, nil
}

// LatestRecords returns up to limit records, newest first.
func (s *Store) LatestRecords(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,created_at FROM records ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var created int64
		if err := rows.Scan(&r.ID, &r.Title, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(0, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// AddNote records n. It fails with ErrUnknownRecord when the record does not
// exist and ErrDuplicateNote when the email already rated the record.
func (s *Store) AddNote(ctx context.Context, n Note) error {
	var exist int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM records WHERE id=$1`, n.RecordID).Scan(&exist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownRecord
		}
		return err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO notes (record_id,email,note,created_at) VALUES ($1,$2,$3,$4)
		ON CONFLICT (record_id, email) DO NOTHING`,
		n.RecordID, n.Email, n.Note, s.now().UnixNano())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDuplicateNote
	}
	return nil
}

// Notes returns every note recorded for a record.
func (s *Store) Notes(ctx context.Context, recordID string) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record_id,email,note FROM notes WHERE record_id=$1 ORDER BY created_at`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.RecordID, &n.Email, &n.Note); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
