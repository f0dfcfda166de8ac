package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"taskbase/internal/models"
	"taskbase/pkg/logger"
)

const taskListTTL = time.Hour

// Redis caches each user's full task list as a single JSON value.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func taskListKey(ownerID string) string {
	return fmt.Sprintf("tasks:%s", ownerID)
}

func (r *Redis) Tasks(ctx context.Context, ownerID string) ([]models.Task, bool) {
	cached, err := r.client.Get(ctx, taskListKey(ownerID)).Result()
	if err != nil {
		return nil, false
	}
	var tasks []models.Task
	if err := json.Unmarshal([]byte(cached), &tasks); err != nil {
		logger.ErrorLogger.Error("Error decoding cached tasks", zap.Error(err))
		return nil, false
	}
	return tasks, true
}

func (r *Redis) SetTasks(ctx context.Context, ownerID string, tasks []models.Task) {
	jsonData, err := json.Marshal(tasks)
	if err != nil {
		logger.ErrorLogger.Error("Error encoding tasks to JSON", zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, taskListKey(ownerID), jsonData, taskListTTL).Err(); err != nil {
		logger.ErrorLogger.Error("Error caching tasks", zap.Error(err))
	}
}

func (r *Redis) Invalidate(ctx context.Context, ownerID string) {
	r.client.Del(ctx, taskListKey(ownerID))
}
