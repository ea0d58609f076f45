package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/Rrens/boardsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_Unmarshal(t *testing.T) {
	var patch domain.CardPatch
	err := json.Unmarshal([]byte(`{"title":"Fix bug","description":null,"tags":["a","b"]}`), &patch)
	require.NoError(t, err)

	assert.True(t, patch.Title.Set)
	assert.True(t, patch.Title.Valid)
	assert.Equal(t, "Fix bug", patch.Title.Value)

	assert.True(t, patch.Description.Set, "explicit null must count as present")
	assert.False(t, patch.Description.Valid)
	assert.Nil(t, patch.Description.Ptr())

	assert.False(t, patch.Position.Set, "absent keys stay untouched")
	assert.Equal(t, []string{"a", "b"}, patch.Tags.Value)

	assert.Equal(t, []string{"title", "description", "tags"}, patch.ChangedFields())
}

func TestOptional_ClientStamps(t *testing.T) {
	var patch domain.ListPatch
	err := json.Unmarshal([]byte(`{"name":"Todo","createdAt":"2024-01-01T00:00:00.000Z"}`), &patch)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T00:00:00.000Z", patch.CreatedAt.Or(""))
	assert.False(t, patch.UpdatedAt.Set)
	assert.Equal(t, []string{"name"}, patch.ChangedFields())
}

func TestOptional_TypeMismatch(t *testing.T) {
	var patch domain.CardPatch
	err := json.Unmarshal([]byte(`{"rating":"five"}`), &patch)
	assert.Error(t, err)
}

func TestOptional_Marshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A domain.Optional[string] `json:"a"`
		B domain.Optional[int]    `json:"b"`
	}{A: domain.Some("x"), B: domain.Null[int]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(out))
}

func TestCard_DisplayResponsible(t *testing.T) {
	legacy := "Alice (legacy)"
	linked := "Bob"
	userID := "user-1"

	tests := []struct {
		name string
		card domain.Card
		want string
	}{
		{"nothing set", domain.Card{}, ""},
		{"legacy only", domain.Card{Responsible: &legacy}, legacy},
		{"linked user wins", domain.Card{Responsible: &legacy, ResponsibleUserID: &userID, ResponsibleName: &linked}, linked},
		{"dangling link falls back", domain.Card{Responsible: &legacy, ResponsibleUserID: &userID}, legacy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.DisplayResponsible())
		})
	}
}
