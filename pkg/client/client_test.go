package client

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	v1 "taskbase/internal/api/v1"
	"taskbase/internal/api/v1/handlers"
	"taskbase/internal/auth"
	"taskbase/internal/cache"
	"taskbase/internal/middleware"
	"taskbase/internal/models"
	"taskbase/internal/repository"
	"taskbase/pkg/board"
	"taskbase/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitLoggers()
	defer logger.SyncLoggers()

	os.Setenv("GO_ENV", "test")
	os.Exit(m.Run())
}

// appDoer drives the client straight through fiber's in-process test
// transport and counts the requests it carries.
type appDoer struct {
	app      *fiber.App
	requests int
}

func (d *appDoer) Do(req *http.Request) (*http.Response, error) {
	d.requests++
	return d.app.Test(req)
}

func newTestServer() *appDoer {
	repo := repository.NewMemory()
	issuer := auth.NewIssuer([]byte("test-secret"))
	h := handlers.New(repo, repo, cache.Noop{}, issuer)

	app := fiber.New()
	app.Use(middleware.ErrorHandler())
	v1.RegisterRoutes(app, h, issuer)
	return &appDoer{app: app}
}

func TestClientSessionFlow(t *testing.T) {
	ctx := context.Background()
	doer := newTestServer()
	c := New("http://taskbase.test", doer)

	user, err := c.Register(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me)
	require.Equal(t, user.ID, me.ID)

	require.NoError(t, c.Logout(ctx))

	me, err = c.Me(ctx)
	require.NoError(t, err)
	require.Nil(t, me, "after logout the client has no session")

	require.NoError(t, c.Login(ctx, "alice@example.com", "password123"))
	me, err = c.Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me)
}

func TestClientBadLogin(t *testing.T) {
	ctx := context.Background()
	c := New("http://taskbase.test", newTestServer())

	_, err := c.Register(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	err = c.Login(ctx, "alice@example.com", "wrongpassword")
	require.ErrorContains(t, err, "User not found or wrong password")
}

func TestClientTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	c := New("http://taskbase.test", newTestServer())

	_, err := c.Register(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	dueAt := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	created, err := c.CreateTask(ctx, "Buy milk", "2% milk", dueAt)
	require.NoError(t, err)
	require.Equal(t, models.StatusTodo, created.Status)
	require.NotNil(t, created.DueAt)

	tasks, err := c.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	title := "Buy oat milk"
	updated, err := c.UpdateTask(ctx, created.ID, TaskPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", updated.Title)
	require.Equal(t, models.StatusTodo, updated.Status)

	require.NoError(t, c.DeleteTask(ctx, created.ID))
	tasks, err = c.Tasks(ctx)
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestClientDrivesBoardDrag(t *testing.T) {
	ctx := context.Background()
	doer := newTestServer()
	c := New("http://taskbase.test", doer)

	_, err := c.Register(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	created, err := c.CreateTask(ctx, "Buy milk", "2% milk", "")
	require.NoError(t, err)

	b := board.NewBoard(c)
	require.NoError(t, b.Reload(ctx, c))

	// Dropping onto the current column issues no HTTP call.
	before := doer.requests
	require.NoError(t, b.MoveTask(ctx, created.ID, models.StatusTodo))
	require.Equal(t, before, doer.requests)

	onBoard := b.Tasks()[0]

	// A real move round-trips and reconciles the server record.
	require.NoError(t, b.MoveTask(ctx, created.ID, models.StatusProgress))
	require.Equal(t, before+1, doer.requests)
	moved := b.Tasks()[0]
	require.Equal(t, models.StatusProgress, moved.Status)
	require.True(t, moved.UpdatedAt.After(onBoard.UpdatedAt) || moved.UpdatedAt.Equal(onBoard.UpdatedAt))

	// The server agrees after a reload.
	require.NoError(t, b.Reload(ctx, c))
	require.Equal(t, models.StatusProgress, b.Tasks()[0].Status)
}
