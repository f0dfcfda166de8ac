// Package board holds the client-side half of the application: the derived
// views over a fetched task collection (search filter, status filter, sort)
// and the drag-driven status transition with optimistic update.
package board

import (
	"sort"
	"strings"

	"taskbase/internal/models"
)

// SortCriterion selects the field tasks sort by.
type SortCriterion string

const (
	SortByDueAt     SortCriterion = "dueAt"
	SortByTitle     SortCriterion = "title"
	SortByCreatedAt SortCriterion = "createdAt"
)

// StatusSet is the active status filter. Empty means "all statuses pass".
type StatusSet map[models.Status]struct{}

func NewStatusSet(statuses ...models.Status) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

func (s StatusSet) Has(status models.Status) bool {
	_, ok := s[status]
	return ok
}

// Toggle flips one status in or out of the set and returns the normalized
// result. Selecting every status collapses back to the empty "all" set, so
// the UI's "everything selected" and "nothing selected" render the same.
func (s StatusSet) Toggle(status models.Status) StatusSet {
	next := make(StatusSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	if next.Has(status) {
		delete(next, status)
	} else {
		next[status] = struct{}{}
	}
	if len(next) == len(models.AllStatuses()) {
		return NewStatusSet()
	}
	return next
}

// FilterBySearch keeps tasks whose title or description contains the term,
// case-insensitively. An empty term is the identity.
func FilterBySearch(tasks []models.Task, term string) []models.Task {
	if term == "" {
		return tasks
	}
	lower := strings.ToLower(term)
	filtered := []models.Task{}
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), lower) ||
			strings.Contains(strings.ToLower(t.Description), lower) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterByStatus keeps tasks whose status is in the set. An empty set
// passes everything.
func FilterByStatus(tasks []models.Task, statuses StatusSet) []models.Task {
	if len(statuses) == 0 {
		return tasks
	}
	filtered := []models.Task{}
	for _, t := range tasks {
		if statuses.Has(t.Status) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// SortTasks returns a copy sorted ascending by the criterion. Tasks with no
// due date sort after every dated task; ties keep their original order.
func SortTasks(tasks []models.Task, by SortCriterion) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch by {
		case SortByTitle:
			return a.Title < b.Title
		case SortByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		case SortByDueAt:
			if a.DueAt == nil {
				return false
			}
			if b.DueAt == nil {
				return true
			}
			return a.DueAt.Before(*b.DueAt)
		default:
			return false
		}
	})
	return sorted
}

// DeriveView runs the full filter-then-sort pipeline. Cheap enough to
// recompute on every state change at this scale.
func DeriveView(tasks []models.Task, term string, statuses StatusSet, by SortCriterion) []models.Task {
	return SortTasks(FilterByStatus(FilterBySearch(tasks, term), statuses), by)
}
