package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskbase/internal/models"
)

func taskAt(id, title, description string, status models.Status, created time.Time, due *time.Time) models.Task {
	return models.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      status,
		DueAt:       due,
		CreatedAt:   created,
	}
}

func sampleTasks() []models.Task {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	due := base.Add(48 * time.Hour)
	return []models.Task{
		taskAt("1", "Buy milk", "2% milk", models.StatusTodo, base, &due),
		taskAt("2", "Write report", "quarterly numbers", models.StatusProgress, base.Add(time.Hour), nil),
		taskAt("3", "Call plumber", "kitchen sink leaks", models.StatusDone, base.Add(2*time.Hour), nil),
	}
}

func TestFilterBySearchEmptyTermIsIdentity(t *testing.T) {
	tasks := sampleTasks()
	got := FilterBySearch(tasks, "")
	require.Equal(t, tasks, got)
}

func TestFilterBySearchMatchesTitleOrDescription(t *testing.T) {
	tasks := sampleTasks()

	byTitle := FilterBySearch(tasks, "MILK")
	require.Len(t, byTitle, 1)
	require.Equal(t, "1", byTitle[0].ID)

	byDescription := FilterBySearch(tasks, "sink")
	require.Len(t, byDescription, 1)
	require.Equal(t, "3", byDescription[0].ID)

	require.Empty(t, FilterBySearch(tasks, "nonexistent"))
}

func TestFilterByStatusEmptySetPassesAll(t *testing.T) {
	tasks := sampleTasks()
	got := FilterByStatus(tasks, NewStatusSet())
	require.Equal(t, tasks, got)
}

func TestFilterByStatusMembership(t *testing.T) {
	tasks := sampleTasks()
	got := FilterByStatus(tasks, NewStatusSet(models.StatusTodo, models.StatusDone))
	require.Len(t, got, 2)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "3", got[1].ID)
}

func TestToggleStatusSetSemantics(t *testing.T) {
	set := NewStatusSet()

	set = set.Toggle(models.StatusTodo)
	require.True(t, set.Has(models.StatusTodo))
	require.Len(t, set, 1)

	set = set.Toggle(models.StatusTodo)
	require.Empty(t, set)
}

func TestToggleSelectingEveryStatusCollapsesToAll(t *testing.T) {
	set := NewStatusSet(models.StatusTodo, models.StatusProgress)
	set = set.Toggle(models.StatusDone)
	require.Empty(t, set, "selecting all statuses must normalize to the empty all set")
}

func TestSortByDueAtPlacesNilLast(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	early := base.Add(time.Hour)
	late := base.Add(72 * time.Hour)
	tasks := []models.Task{
		taskAt("a", "no due", "no due date", models.StatusTodo, base, nil),
		taskAt("b", "late", "due later", models.StatusTodo, base, &late),
		taskAt("c", "early", "due soon", models.StatusTodo, base, &early),
	}

	got := SortTasks(tasks, SortByDueAt)
	require.Equal(t, []string{"c", "b", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestSortByDueAtNilTieKeepsOriginalOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		taskAt("x", "first", "no due date", models.StatusTodo, base, nil),
		taskAt("y", "second", "no due date", models.StatusTodo, base, nil),
	}

	got := SortTasks(tasks, SortByDueAt)
	require.Equal(t, "x", got[0].ID)
	require.Equal(t, "y", got[1].ID)
}

func TestSortByTitleAndCreatedAt(t *testing.T) {
	tasks := sampleTasks()

	byTitle := SortTasks(tasks, SortByTitle)
	require.Equal(t, "Buy milk", byTitle[0].Title)
	require.Equal(t, "Call plumber", byTitle[1].Title)
	require.Equal(t, "Write report", byTitle[2].Title)

	byCreated := SortTasks(tasks, SortByCreatedAt)
	require.Equal(t, []string{"1", "2", "3"},
		[]string{byCreated[0].ID, byCreated[1].ID, byCreated[2].ID})
}

func TestSortDoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	_ = SortTasks(tasks, SortByTitle)
	require.Equal(t, "1", tasks[0].ID)
}

func TestDeriveViewPipeline(t *testing.T) {
	tasks := sampleTasks()
	got := DeriveView(tasks, "", NewStatusSet(), SortByCreatedAt)
	require.Equal(t, tasks, got, "identity filters must return the set unchanged, order preserved")
}
