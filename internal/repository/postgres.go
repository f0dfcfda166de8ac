package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"taskbase/internal/models"
)

// Postgres implements UserRepository and TaskRepository on database/sql.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// CreateSchema creates the users and tasks tables if they do not exist yet.
func CreateSchema(db *sql.DB) error {
	query := `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    password VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users (id),
    title VARCHAR(255) NOT NULL,
    description TEXT NOT NULL,
    status VARCHAR(32) NOT NULL,
    due_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(query)
	return err
}

// DropSchema removes both tables. Used by tests to leave a clean database.
func DropSchema(db *sql.DB) error {
	_, err := db.Exec(`
    DROP TABLE IF EXISTS tasks;
    DROP TABLE IF EXISTS users;
    `)
	return err
}

func (p *Postgres) CreateUser(ctx context.Context, user *models.User) error {
	_, err := p.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
		user.ID, user.Email, user.Password, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := p.db.QueryRowContext(ctx,
		"SELECT id, email, password, created_at, updated_at FROM users WHERE email = $1",
		email).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (p *Postgres) UserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := p.db.QueryRowContext(ctx,
		"SELECT id, email, password, created_at, updated_at FROM users WHERE id = $1",
		id).Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (p *Postgres) CreateTask(ctx context.Context, task *models.Task) error {
	_, err := p.db.ExecContext(ctx,
		"INSERT INTO tasks (id, user_id, title, description, status, due_at, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		task.ID, task.OwnerID, task.Title, task.Description, task.Status, task.DueAt, task.CreatedAt, task.UpdatedAt)
	return err
}

func (p *Postgres) TasksByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	rows, err := p.db.QueryContext(ctx,
		"SELECT id, user_id, title, description, status, due_at, created_at, updated_at FROM tasks WHERE user_id = $1 ORDER BY created_at",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description,
			&task.Status, &task.DueAt, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (p *Postgres) TaskByID(ctx context.Context, ownerID, id string) (models.Task, error) {
	var task models.Task
	err := p.db.QueryRowContext(ctx,
		"SELECT id, user_id, title, description, status, due_at, created_at, updated_at FROM tasks WHERE id = $1 AND user_id = $2",
		id, ownerID).Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description,
		&task.Status, &task.DueAt, &task.CreatedAt, &task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	return task, err
}

func (p *Postgres) UpdateTask(ctx context.Context, task *models.Task) error {
	res, err := p.db.ExecContext(ctx,
		"UPDATE tasks SET title = $1, description = $2, status = $3, due_at = $4, updated_at = $5 WHERE id = $6 AND user_id = $7",
		task.Title, task.Description, task.Status, task.DueAt, task.UpdatedAt, task.ID, task.OwnerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteTask(ctx context.Context, ownerID, id string) error {
	res, err := p.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
