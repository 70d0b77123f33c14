package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-manager/internal/model"
	"user-manager/internal/repository"
)

func TestMemoryUserRepo_CRUD(t *testing.T) {
	r := repository.NewMemoryUserRepo()
	ctx := context.Background()

	users, err := r.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	alice, err := r.Create(ctx, model.UserInput{Name: "Alice", Email: "alice@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)

	bob, err := r.Create(ctx, model.UserInput{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob.ID)

	updated, err := r.Update(ctx, alice.ID, model.UserInput{Name: "Alicia", Email: "alicia@x.com"})
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: 1, Name: "Alicia", Email: "alicia@x.com"}, updated)

	users, err = r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.User{updated, bob}, users)

	require.NoError(t, r.Delete(ctx, alice.ID))
	users, err = r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.User{bob}, users)

	// id не переиспользуются после удаления
	carol, err := r.Create(ctx, model.UserInput{Name: "Carol", Email: "carol@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), carol.ID)
}

func TestMemoryUserRepo_NotFound(t *testing.T) {
	r := repository.NewMemoryUserRepo()
	ctx := context.Background()

	_, err := r.Update(ctx, 42, model.UserInput{Name: "X", Email: "x@x.com"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = r.Delete(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
