// Package repo is the Postgres persistence layer: user accounts and the
// per-user archive of completed analyses.
package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"Flexura/internal/beam/model"
)

type SavedAnalysis struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	RequestID string          `json:"request_id"`
	CreatedAt time.Time       `json:"created_at"`
	Results   json.RawMessage `json:"results"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, passwordHash string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	SaveAnalysis(ctx context.Context, userID int, name string, results model.AnalysisResults) (int, error)
	ListAnalyses(ctx context.Context, userID int) ([]SavedAnalysis, error)
	GetAnalysis(ctx context.Context, userID, id int) (SavedAnalysis, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, passwordHash string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, passwordHash).Scan(&id)
	return id, err
}

// GetByLogin returns (0, "", nil) for an unknown login; the caller's hash
// comparison then fails without revealing whether the account exists.
func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveAnalysis(ctx context.Context, userID int, name string, results model.AnalysisResults) (int, error) {
	payload, err := json.Marshal(results)
	if err != nil {
		return 0, fmt.Errorf("encode results: %w", err)
	}
	var id int
	query := `INSERT INTO analyses (user_id, name, request_id, results, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = r.db.QueryRowContext(ctx, query, userID, name, results.RequestID, payload, time.Now()).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListAnalyses(ctx context.Context, userID int) ([]SavedAnalysis, error) {
	query := `SELECT id, name, request_id, created_at
	          FROM analyses WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedAnalysis
	for rows.Next() {
		var a SavedAnalysis
		if err := rows.Scan(&a.ID, &a.Name, &a.RequestID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetAnalysis(ctx context.Context, userID, id int) (SavedAnalysis, error) {
	var a SavedAnalysis
	query := `SELECT id, name, request_id, created_at, results
	          FROM analyses WHERE user_id=$1 AND id=$2`
	err := r.db.QueryRowContext(ctx, query, userID, id).
		Scan(&a.ID, &a.Name, &a.RequestID, &a.CreatedAt, (*[]byte)(&a.Results))
	return a, err
}
