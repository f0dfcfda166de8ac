package handlers

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskbase/internal/middleware"
	"taskbase/internal/models"
	"taskbase/internal/repository"
	"taskbase/pkg/logger"
)

var errPastDueDate = errors.New("due date must be in the future")

// parseDueAt normalizes the wire representation of a due date. Both ""
// and an absent field mean "no due date" and return nil; a present value
// must parse and lie strictly in the future.
func parseDueAt(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
		if err != nil {
			return nil, err
		}
	}
	parsed = parsed.UTC()
	if !parsed.After(time.Now().UTC()) {
		return nil, errPastDueDate
	}
	return &parsed, nil
}

func callerID(c *fiber.Ctx) string {
	return c.Locals(middleware.UserIDKey).(string)
}

// CreateTask persists a new task for the caller. Status always starts at
// TODO regardless of the request body.
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	ownerID := callerID(c)

	type TaskRequest struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description" validate:"required,min=5"`
		DueAt       string `json:"dueAt"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	dueAt, err := parseDueAt(req.DueAt)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "The date must be a future date",
			"success": false,
			"status":  400,
		})
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusTodo,
		DueAt:       dueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.tasks.CreateTask(c.Context(), &task); err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating task",
			"success": false,
			"status":  500,
		})
	}
	h.cache.Invalidate(c.Context(), ownerID)

	logger.AuditLogger.Info("Task created successfully", zap.String("taskID", task.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "Task created successfully",
		"success": true,
		"status":  201,
		"data":    fiber.Map{"task": task},
	})
}

// ListTasks returns every task of the caller, cache-first.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	ownerID := callerID(c)

	if tasks, ok := h.cache.Tasks(c.Context(), ownerID); ok {
		return c.JSON(fiber.Map{
			"message": "Tasks fetched successfully (from cache)",
			"success": true,
			"status":  200,
			"data":    fiber.Map{"tasks": tasks},
		})
	}

	tasks, err := h.tasks.TasksByOwner(c.Context(), ownerID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching tasks",
			"success": false,
			"status":  500,
		})
	}
	h.cache.SetTasks(c.Context(), ownerID, tasks)

	return c.JSON(fiber.Map{
		"message": "Tasks fetched successfully",
		"success": true,
		"status":  200,
		"data":    fiber.Map{"tasks": tasks},
	})
}

// UpdateTask applies a partial update to an owned task. The owner id never
// changes; an id owned by someone else is indistinguishable from a missing
// one.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	ownerID := callerID(c)
	taskID := c.Params("id")

	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		DueAt       *string `json:"dueAt"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	// All validation happens before any store access. Length limits count
	// runes, same as the create path's validator tags.
	if req.Title != nil && utf8.RuneCountInString(*req.Title) < 3 {
		return c.Status(400).JSON(fiber.Map{
			"message": "Minimum 3 characters required",
			"success": false,
			"status":  400,
		})
	}
	if req.Description != nil && utf8.RuneCountInString(*req.Description) < 5 {
		return c.Status(400).JSON(fiber.Map{
			"message": "Minimum 5 characters required",
			"success": false,
			"status":  400,
		})
	}
	if req.Status != nil && !models.Status(*req.Status).Valid() {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid status",
			"success": false,
			"status":  400,
		})
	}
	var dueAt *time.Time
	if req.DueAt != nil {
		parsed, err := parseDueAt(*req.DueAt)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"message": "The date must be a future date",
				"success": false,
				"status":  400,
			})
		}
		dueAt = parsed
	}

	task, err := h.tasks.TaskByID(c.Context(), ownerID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Task not found",
				"success": false,
				"status":  404,
			})
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching task",
			"success": false,
			"status":  500,
		})
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.Status(*req.Status)
	}
	if req.DueAt != nil {
		task.DueAt = dueAt
	}
	task.UpdatedAt = time.Now().UTC()

	if err := h.tasks.UpdateTask(c.Context(), &task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Task not found",
				"success": false,
				"status":  404,
			})
		}
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating task",
			"success": false,
			"status":  500,
		})
	}
	h.cache.Invalidate(c.Context(), ownerID)

	logger.AuditLogger.Info("Task updated", zap.String("taskID", taskID))
	return c.JSON(fiber.Map{
		"message": "Task updated successfully",
		"success": true,
		"status":  200,
		"data":    fiber.Map{"task": task},
	})
}

// DeleteTask hard-deletes an owned task. Non-recoverable.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	ownerID := callerID(c)
	taskID := c.Params("id")

	if err := h.tasks.DeleteTask(c.Context(), ownerID, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Task not found",
				"success": false,
				"status":  404,
			})
		}
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting task",
			"success": false,
			"status":  500,
		})
	}
	h.cache.Invalidate(c.Context(), ownerID)

	logger.AuditLogger.Info("Task deleted", zap.String("taskID", taskID))
	return c.JSON(fiber.Map{
		"message": "Task deleted successfully",
		"success": true,
		"status":  200,
	})
}
