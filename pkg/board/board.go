package board

import (
	"context"
	"errors"
	"sync"

	"taskbase/internal/models"
)

// ErrUnknownTask is returned when a move names a task id that is not on
// the board.
var ErrUnknownTask = errors.New("task not on board")

// TaskFetcher loads the authoritative task collection.
type TaskFetcher interface {
	Tasks(ctx context.Context) ([]models.Task, error)
}

// TaskUpdater persists a status change and returns the updated record.
type TaskUpdater interface {
	UpdateTaskStatus(ctx context.Context, id string, status models.Status) (models.Task, error)
}

// Board is the in-memory cache of the task collection plus the drag-driven
// status transition. Consistency is "reload after write": callers Reload
// after every other mutation; MoveTask itself reconciles optimistically.
type Board struct {
	mu      sync.Mutex
	tasks   []models.Task
	updater TaskUpdater
}

func NewBoard(updater TaskUpdater) *Board {
	return &Board{updater: updater}
}

// Load replaces the snapshot.
func (b *Board) Load(tasks []models.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append([]models.Task(nil), tasks...)
}

// Reload replaces the snapshot from the fetcher.
func (b *Board) Reload(ctx context.Context, fetcher TaskFetcher) error {
	tasks, err := fetcher.Tasks(ctx)
	if err != nil {
		return err
	}
	b.Load(tasks)
	return nil
}

// Tasks returns a copy of the current snapshot.
func (b *Board) Tasks() []models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Task(nil), b.tasks...)
}

// MoveTask reassigns a task's status, as when a card is dropped on another
// column. Dropping on the current column is a no-op: no update call, no
// timestamp change. Otherwise the new status applies optimistically, and a
// failed server call restores the snapshot captured before the move.
func (b *Board) MoveTask(ctx context.Context, id string, status models.Status) error {
	b.mu.Lock()
	index := -1
	for i, t := range b.tasks {
		if t.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		b.mu.Unlock()
		return ErrUnknownTask
	}
	if b.tasks[index].Status == status {
		b.mu.Unlock()
		return nil
	}

	snapshot := append([]models.Task(nil), b.tasks...)
	b.tasks[index].Status = status
	b.mu.Unlock()

	updated, err := b.updater.UpdateTaskStatus(ctx, id, status)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.tasks = snapshot
		return err
	}
	for i, t := range b.tasks {
		if t.ID == id {
			b.tasks[i] = updated
			break
		}
	}
	return nil
}
