package roster

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func setupStoreTest(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	return NewStore(db), mock, func() { db.Close() }
}

func agentColumns() []string {
	return []string{"id", "name", "email", "mobile_number", "country_code", "is_active", "created_at", "updated_at"}
}

func TestStore_Create(t *testing.T) {
	store, mock, cleanup := setupStoreTest(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("john@example.com", uuid.Nil).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO agents`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	agent := &Agent{
		Name:         "John Smith",
		Email:        "  John@Example.com ",
		MobileNumber: "5550101",
		CountryCode:  "+1",
		PasswordHash: "hash",
		IsActive:     true,
	}
	if err := store.Create(context.Background(), agent); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if agent.ID == uuid.Nil {
		t.Error("Create() did not assign an ID")
	}
	if agent.Email != "john@example.com" {
		t.Errorf("Email = %q, want normalized lowercase", agent.Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	store, mock, cleanup := setupStoreTest(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("john@example.com", uuid.Nil).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	agent := &Agent{Name: "John", Email: "john@example.com", PasswordHash: "hash"}
	err := store.Create(context.Background(), agent)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Create() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	store, mock, cleanup := setupStoreTest(t)
	defer cleanup()

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM agents WHERE id`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), id)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStore_FindActive(t *testing.T) {
	store, mock, cleanup := setupStoreTest(t)
	defer cleanup()

	now := time.Now()
	first := uuid.New()
	second := uuid.New()
	rows := sqlmock.NewRows(agentColumns()).
		AddRow(first, "John Smith", "john@example.com", "5550101", "+1", true, now, now).
		AddRow(second, "Sarah Johnson", "sarah@example.com", "5550102", "+1", true, now.Add(time.Millisecond), now)

	mock.ExpectQuery(`SELECT .+ FROM agents WHERE is_active = TRUE ORDER BY created_at, id LIMIT`).
		WithArgs(5).
		WillReturnRows(rows)

	agents, err := store.FindActive(context.Background(), 5)
	if err != nil {
		t.Fatalf("FindActive() error: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("agents = %d, want 2", len(agents))
	}
	if agents[0].ID != first || agents[1].ID != second {
		t.Errorf("FindActive() returned agents out of order")
	}
}

func TestStore_Update_Partial(t *testing.T) {
	store, mock, cleanup := setupStoreTest(t)
	defer cleanup()

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM agents WHERE id`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(append(agentColumns()[:5], "password_hash", "is_active", "created_at", "updated_at")).
			AddRow(id, "John Smith", "john@example.com", "5550101", "+1", "hash", true, now, now))
	mock.ExpectExec(`UPDATE agents SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	active := false
	agent, err := store.Update(context.Background(), id, UpdateAgentInput{IsActive: &active})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if agent.IsActive {
		t.Error("IsActive = true, want false")
	}
	if agent.Name != "John Smith" {
		t.Errorf("Name = %q, want unchanged", agent.Name)
	}
}

func TestStore_Update_DuplicateEmail(t *testing.T) {
	store, mock, cleanup := setupStoreTest(t)
	defer cleanup()

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM agents WHERE id`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(append(agentColumns()[:5], "password_hash", "is_active", "created_at", "updated_at")).
			AddRow(id, "John Smith", "john@example.com", "5550101", "+1", "hash", true, now, now))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("taken@example.com", id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	email := "taken@example.com"
	_, err := store.Update(context.Background(), id, UpdateAgentInput{Email: &email})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Update() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestStore_Delete_NotFound(t *testing.T) {
	store, mock, cleanup := setupStoreTest(t)
	defer cleanup()

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM agents WHERE id`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), id)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
