package solver

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cardroom/holdem-engine/pkg/cards"
)

// Store persists solve runs in SQLite so solved spots can be reloaded
// instead of re-solved.
type Store struct {
	db *sql.DB
}

// Run is one persisted solve.
type Run struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Board     string    `json:"board"`
	Iterations int      `json:"iterations"`
	InfoSets   int      `json:"infosets"`
	ElapsedMS  int64    `json:"elapsed_ms"`
}

// OpenStore opens (and migrates) a store at the given path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TIMESTAMP NOT NULL,
			board TEXT NOT NULL,
			iterations INTEGER NOT NULL,
			infosets INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			result_json BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_board ON runs(board);
	`)
	if err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	return nil
}

// SaveRun stores a solved result for the given board.
func (s *Store) SaveRun(board []cards.Card, res *Result) (int64, error) {
	data, err := MarshalResult(res)
	if err != nil {
		return 0, fmt.Errorf("encode result: %w", err)
	}
	out, err := s.db.Exec(
		`INSERT INTO runs (created_at, board, iterations, infosets, elapsed_ms, result_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), cards.FormatCards(board), res.Iterations, res.InfoSets,
		res.Elapsed.Milliseconds(), data,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return out.LastInsertId()
}

// LoadRun fetches a stored result by id.
func (s *Store) LoadRun(id int64) (*Result, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT result_json FROM runs WHERE id = ?`, id).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("load run %d: %w", id, err)
	}
	return UnmarshalResult(data)
}

// ListRuns returns run metadata for a board, newest first. An empty board
// string lists everything.
func (s *Store) ListRuns(board string) ([]Run, error) {
	query := `SELECT id, created_at, board, iterations, infosets, elapsed_ms FROM runs`
	args := []any{}
	if board != "" {
		query += ` WHERE board = ?`
		args = append(args, board)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Board, &r.Iterations, &r.InfoSets, &r.ElapsedMS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
