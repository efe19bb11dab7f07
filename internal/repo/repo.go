package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Calculation is one stored engine run: the input mapping and output mapping
// are kept verbatim as JSON alongside a status field.
type Calculation struct {
	ID              int             `json:"id"`
	UserID          int             `json:"user_id"`
	CalculatorType  string          `json:"calculator_type"`
	CalculationType string          `json:"calculation_type"`
	Inputs          json.RawMessage `json:"inputs"`
	Results         json.RawMessage `json:"results"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	SaveCalculation(ctx context.Context, c Calculation) (int, error)
	ListCalculations(ctx context.Context, userID int) ([]Calculation, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

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

func (r *PostgresRepository) SaveCalculation(ctx context.Context, c Calculation) (int, error) {
	var id int
	query := `INSERT INTO calculations
		(user_id, calculator_type, calculation_type, inputs, results, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.CalculatorType, c.CalculationType,
		[]byte(c.Inputs), []byte(c.Results), c.Status).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListCalculations(ctx context.Context, userID int) ([]Calculation, error) {
	query := `SELECT id, user_id, calculator_type, calculation_type,
		inputs, results, status, created_at
		FROM calculations WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Calculation
	for rows.Next() {
		var c Calculation
		if err := rows.Scan(&c.ID, &c.UserID, &c.CalculatorType, &c.CalculationType,
			&c.Inputs, &c.Results, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
