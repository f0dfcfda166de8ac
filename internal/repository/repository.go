package repository

import (
	"context"
	"errors"

	"taskbase/internal/models"
)

var (
	// ErrNotFound covers both "does not exist" and "exists but belongs to
	// someone else", so task ids of other users are never confirmed.
	ErrNotFound = errors.New("not found")

	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id string) (models.User, error)
}

// TaskRepository scopes every read and write by owner id. Handlers never
// check ownership themselves; the WHERE clause is the authorization guard.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	TasksByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
	TaskByID(ctx context.Context, ownerID, id string) (models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, ownerID, id string) error
}
