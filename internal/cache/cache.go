package cache

import (
	"context"

	"taskbase/internal/models"
)

// TaskCache holds a per-user snapshot of the task list. A failed cache is
// never an error for the caller: lookups report a miss and writes are
// best-effort.
type TaskCache interface {
	Tasks(ctx context.Context, ownerID string) ([]models.Task, bool)
	SetTasks(ctx context.Context, ownerID string, tasks []models.Task)
	Invalidate(ctx context.Context, ownerID string)
}

// Noop satisfies TaskCache without caching anything. Used in tests and when
// Redis is not wanted.
type Noop struct{}

func (Noop) Tasks(context.Context, string) ([]models.Task, bool) { return nil, false }
func (Noop) SetTasks(context.Context, string, []models.Task)     {}
func (Noop) Invalidate(context.Context, string)                  {}
