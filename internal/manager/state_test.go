package manager_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"user-manager/internal/manager"
	"user-manager/internal/model"
)

func TestFilterUsers(t *testing.T) {
	alice := model.User{ID: 1, Name: "Alice", Email: "a@x.com"}
	bob := model.User{ID: 2, Name: "Bob", Email: "b@x.com"}
	cache := []model.User{alice, bob}

	tests := []struct {
		name string
		term string
		want []model.User
	}{
		{name: "Empty term returns all", term: "", want: []model.User{alice, bob}},
		{name: "Email substring", term: "a@x", want: []model.User{alice}},
		{name: "Name case-insensitive", term: "BOB", want: []model.User{bob}},
		{name: "Shared domain", term: "@X.COM", want: []model.User{alice, bob}},
		{name: "No match", term: "carol", want: []model.User{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, manager.FilterUsers(cache, tt.term))
		})
	}
}

func TestFilterUsers_DoesNotMutateCache(t *testing.T) {
	cache := []model.User{{ID: 1, Name: "Alice", Email: "alice@x.com"}}

	got := manager.FilterUsers(cache, "bob")

	assert.Empty(t, got)
	assert.Len(t, cache, 1)
}

func TestState_ModeAndVisible(t *testing.T) {
	id := int64(2)
	s := manager.State{
		Users:  []model.User{{ID: 1, Name: "Alice", Email: "alice@x.com"}},
		Search: "bob",
	}
	assert.Equal(t, manager.ModeAdding, s.Mode())
	assert.Empty(t, s.Visible())

	s.EditingID = &id
	assert.Equal(t, manager.ModeEditing, s.Mode())
	assert.Equal(t, "editing", s.Mode().String())
}
