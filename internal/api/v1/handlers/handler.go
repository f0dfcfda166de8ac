package handlers

import (
	"github.com/go-playground/validator/v10"

	"taskbase/internal/auth"
	"taskbase/internal/cache"
	"taskbase/internal/repository"
)

// Handler carries the dependencies of every route. Nothing is global: the
// same constructor wires production (Postgres + Redis) and tests (in-memory
// repositories + no-op cache).
type Handler struct {
	users    repository.UserRepository
	tasks    repository.TaskRepository
	cache    cache.TaskCache
	issuer   *auth.Issuer
	validate *validator.Validate
}

func New(
	users repository.UserRepository,
	tasks repository.TaskRepository,
	taskCache cache.TaskCache,
	issuer *auth.Issuer,
) *Handler {
	return &Handler{
		users:    users,
		tasks:    tasks,
		cache:    taskCache,
		issuer:   issuer,
		validate: validator.New(),
	}
}
