package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"taskbase/internal/models"
)

// Memory is a mutex-guarded in-memory implementation of both repositories.
// It backs the handler tests and works as a throwaway store for local runs.
type Memory struct {
	mu    sync.RWMutex
	users map[string]models.User
	tasks map[string]models.Task
}

func NewMemory() *Memory {
	return &Memory{
		users: make(map[string]models.User),
		tasks: make(map[string]models.Task),
	}
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicateEmail
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) UserByID(_ context.Context, id string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

// RemoveUser deletes a user record. Only tests need this; the API has no
// account-deletion surface.
func (m *Memory) RemoveUser(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

func (m *Memory) CreateTask(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = *task
	return nil
}

func (m *Memory) TasksByOwner(_ context.Context, ownerID string) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := []models.Task{}
	for _, t := range m.tasks {
		if t.OwnerID == ownerID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (m *Memory) TaskByID(_ context.Context, ownerID, id string) (models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return models.Task{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) UpdateTask(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return ErrNotFound
	}
	m.tasks[task.ID] = *task
	return nil
}

func (m *Memory) DeleteTask(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[id]
	if !ok || existing.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}
