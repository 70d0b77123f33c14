package e2e

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-manager/internal/client"
	httpapi "user-manager/internal/http"
	"user-manager/internal/manager"
	"user-manager/internal/model"
	"user-manager/internal/repository"
	"user-manager/internal/service"
)

func TestE2E_FullFlow(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	h := httpapi.NewHandler(service.NewUserService(repository.NewMemoryUserRepo()), logger)
	ts := httptest.NewServer(h.Router())
	defer ts.Close()

	waitForService(t, ts.URL)

	ctx := context.Background()
	mgr := manager.New(client.New(ts.URL+"/users", client.WithTimeout(5*time.Second)), logger)

	t.Log("Step 1: Initial fetch")
	require.NoError(t, mgr.FetchAll(ctx))
	assert.Empty(t, mgr.Snapshot().Users)

	t.Log("Step 2: Add users")
	for _, f := range []model.Form{
		{Name: "Alice", Email: "a@x.com"},
		{Name: "Bob", Email: "b@x.com"},
	} {
		mgr.SetName(f.Name)
		mgr.SetEmail(f.Email)
		require.NoError(t, mgr.SubmitAdd(ctx))
		assert.Equal(t, model.Form{}, mgr.Snapshot().Form)
	}
	assert.Equal(t, []model.User{
		{ID: 1, Name: "Alice", Email: "a@x.com"},
		{ID: 2, Name: "Bob", Email: "b@x.com"},
	}, mgr.Snapshot().Users)

	t.Log("Step 3: Search")
	mgr.SetSearch("a@x")
	assert.Equal(t, []model.User{{ID: 1, Name: "Alice", Email: "a@x.com"}}, mgr.Snapshot().Visible())
	mgr.SetSearch("")

	t.Log("Step 4: Edit Bob")
	mgr.StartEdit(mgr.Snapshot().Users[1])
	mgr.SetName("Robert")
	require.NoError(t, mgr.SubmitUpdate(ctx))
	s := mgr.Snapshot()
	assert.Equal(t, manager.ModeAdding, s.Mode())
	assert.Equal(t, "Robert", s.Users[1].Name)

	t.Log("Step 5: Delete declined, then confirmed")
	done, err := mgr.Remove(ctx, 1, manager.ConfirmFunc(func(string) bool { return false }))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Len(t, mgr.Snapshot().Users, 2)

	done, err = mgr.Remove(ctx, 1, manager.ConfirmFunc(func(string) bool { return true }))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []model.User{{ID: 2, Name: "Robert", Email: "b@x.com"}}, mgr.Snapshot().Users)

	t.Log("Step 6: Update of a deleted user keeps the form")
	mgr.StartEdit(model.User{ID: 1, Name: "Ghost", Email: "g@x.com"})
	err = mgr.SubmitUpdate(ctx)
	require.Error(t, err)
	s = mgr.Snapshot()
	assert.Equal(t, manager.ModeEditing, s.Mode())
	assert.Equal(t, model.Form{Name: "Ghost", Email: "g@x.com"}, s.Form)
	require.NotNil(t, s.Notice)
	assert.Equal(t, "Error updating user: update user: HTTP 404: user not found", s.Notice.Message)
}

func waitForService(t *testing.T, baseURL string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatal("Service did not start in time")
		case <-ticker.C:
			resp, err := http.Get(baseURL + "/health")
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return
				}
			}
		}
	}
}
