package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/dayoon/recruit-bot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) SaveApplicant(ctx context.Context, applicant *models.Applicant) error {
	query := `
		INSERT INTO applicants (name, position, department, experience, tech_stack)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		applicant.Name,
		applicant.Position,
		applicant.Department,
		applicant.Experience,
		pq.Array(applicant.TechStack),
	).Scan(&applicant.ID, &applicant.CreatedAt)

	if err != nil {
		return fmt.Errorf("error saving applicant: %v", err)
	}

	return nil
}

func (s *PostgresStorage) QueryApplicants(ctx context.Context, filter models.ApplicantFilter) ([]*models.Applicant, error) {
	query := `
		SELECT id, name, position, department, experience, tech_stack, created_at
		FROM applicants`

	var conditions []string
	var args []any
	if filter.Department != "" {
		args = append(args, "%"+filter.Department+"%")
		conditions = append(conditions, fmt.Sprintf("department LIKE $%d", len(args)))
	}
	if filter.Position != "" {
		args = append(args, "%"+filter.Position+"%")
		conditions = append(conditions, fmt.Sprintf("position LIKE $%d", len(args)))
	}
	if filter.Keyword != "" {
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(position) LIKE $%d)", n, n))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying applicants: %v", err)
	}
	defer rows.Close()

	var applicants []*models.Applicant
	for rows.Next() {
		applicant := &models.Applicant{}
		err := rows.Scan(
			&applicant.ID,
			&applicant.Name,
			&applicant.Position,
			&applicant.Department,
			&applicant.Experience,
			pq.Array(&applicant.TechStack),
			&applicant.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning applicant: %v", err)
		}
		applicants = append(applicants, applicant)
	}

	return applicants, rows.Err()
}

func (s *PostgresStorage) SaveChatTurn(ctx context.Context, turn *models.ChatTurn) error {
	query := `
		INSERT INTO chat_turns (session_id, message, intent, response, confidence)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		turn.SessionID,
		turn.Message,
		string(turn.Intent),
		turn.Response,
		turn.Confidence,
	).Scan(&turn.ID, &turn.CreatedAt)

	if err != nil {
		return fmt.Errorf("error saving chat turn: %v", err)
	}

	return nil
}

func (s *PostgresStorage) ChatTurns(ctx context.Context, sessionID string) ([]*models.ChatTurn, error) {
	query := `
		SELECT id, session_id, message, intent, response, confidence, created_at
		FROM chat_turns
		WHERE session_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying chat turns: %v", err)
	}
	defer rows.Close()

	var turns []*models.ChatTurn
	for rows.Next() {
		turn := &models.ChatTurn{}
		var intent string
		err := rows.Scan(
			&turn.ID,
			&turn.SessionID,
			&turn.Message,
			&intent,
			&turn.Response,
			&turn.Confidence,
			&turn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat turn: %v", err)
		}
		turn.Intent = models.Intent(intent)
		turns = append(turns, turn)
	}

	return turns, rows.Err()
}

func (s *PostgresStorage) AcceptedValues(ctx context.Context, field string, limit int) ([]string, error) {
	query := `
		SELECT value
		FROM accepted_values
		WHERE field = $1
		ORDER BY created_at DESC
		LIMIT $2`

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, query, field, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying accepted values: %v", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("error scanning accepted value: %v", err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

func (s *PostgresStorage) RecordAccepted(ctx context.Context, field, value string) error {
	query := `
		INSERT INTO accepted_values (field, value)
		VALUES ($1, $2)
		ON CONFLICT (field, value) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, field, value); err != nil {
		return fmt.Errorf("error recording accepted value: %v", err)
	}

	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
