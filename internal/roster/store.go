package roster

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("agent not found")
	ErrDuplicateEmail = errors.New("agent with this email already exists")
)

// Store provides database operations for agents
type Store struct {
	db *sql.DB
}

// NewStore creates a new agent store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new agent. The password must already be hashed.
func (s *Store) Create(ctx context.Context, agent *Agent) error {
	agent.ID = uuid.New()
	agent.Email = strings.ToLower(strings.TrimSpace(agent.Email))
	agent.CreatedAt = time.Now()
	agent.UpdatedAt = agent.CreatedAt

	taken, err := s.emailTaken(ctx, agent.Email, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}

	query := `INSERT INTO agents (id, name, email, mobile_number, country_code, password_hash,
		is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.db.ExecContext(ctx, query, agent.ID, agent.Name, agent.Email,
		agent.MobileNumber, agent.CountryCode, agent.PasswordHash,
		agent.IsActive, agent.CreatedAt, agent.UpdatedAt)
	return err
}

// Get retrieves an agent by ID
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Agent, error) {
	query := `SELECT id, name, email, mobile_number, country_code, password_hash,
		is_active, created_at, updated_at
		FROM agents WHERE id = $1`

	agent := &Agent{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&agent.ID, &agent.Name, &agent.Email, &agent.MobileNumber, &agent.CountryCode,
		&agent.PasswordHash, &agent.IsActive, &agent.CreatedAt, &agent.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return agent, nil
}

// List retrieves all agents, newest first
func (s *Store) List(ctx context.Context) ([]*Agent, error) {
	query := `SELECT id, name, email, mobile_number, country_code, is_active, created_at, updated_at
		FROM agents ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []*Agent
	for rows.Next() {
		agent := &Agent{}
		err := rows.Scan(&agent.ID, &agent.Name, &agent.Email, &agent.MobileNumber,
			&agent.CountryCode, &agent.IsActive, &agent.CreatedAt, &agent.UpdatedAt)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

// FindActive returns active agents in creation order, capped at limit.
// Distribution is order-sensitive, so the ordering here must be stable:
// created_at with id as tie-break.
func (s *Store) FindActive(ctx context.Context, limit int) ([]*Agent, error) {
	query := `SELECT id, name, email, mobile_number, country_code, is_active, created_at, updated_at
		FROM agents WHERE is_active = TRUE ORDER BY created_at, id LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []*Agent
	for rows.Next() {
		agent := &Agent{}
		err := rows.Scan(&agent.ID, &agent.Name, &agent.Email, &agent.MobileNumber,
			&agent.CountryCode, &agent.IsActive, &agent.CreatedAt, &agent.UpdatedAt)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

// Update applies a partial update to an agent
func (s *Store) Update(ctx context.Context, id uuid.UUID, input UpdateAgentInput) (*Agent, error) {
	agent, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != agent.Email {
			taken, err := s.emailTaken(ctx, email, id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrDuplicateEmail
			}
			agent.Email = email
		}
	}
	if input.Name != nil {
		agent.Name = *input.Name
	}
	if input.MobileNumber != nil {
		agent.MobileNumber = *input.MobileNumber
	}
	if input.CountryCode != nil {
		agent.CountryCode = *input.CountryCode
	}
	if input.IsActive != nil {
		agent.IsActive = *input.IsActive
	}
	agent.UpdatedAt = time.Now()

	query := `UPDATE agents SET name = $1, email = $2, mobile_number = $3, country_code = $4,
		is_active = $5, updated_at = $6 WHERE id = $7`

	_, err = s.db.ExecContext(ctx, query, agent.Name, agent.Email, agent.MobileNumber,
		agent.CountryCode, agent.IsActive, agent.UpdatedAt, id)
	if err != nil {
		return nil, err
	}
	return agent, nil
}

// Delete removes an agent by ID
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// emailTaken reports whether another agent already uses the email.
// excludeID skips the agent being updated; pass uuid.Nil on create.
func (s *Store) emailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM agents WHERE email = $1 AND id != $2)`,
		email, excludeID).Scan(&exists)
	return exists, err
}
