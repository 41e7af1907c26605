package services

import (
	"testing"

	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/stretchr/testify/require"
)

func rosterMember(userID uint64, name, email string) models.ProjectMember {
	return models.ProjectMember{
		UserID: userID,
		User:   models.User{ID: userID, Name: name, Email: email},
	}
}

func TestResolveMember(t *testing.T) {
	roster := []models.ProjectMember{
		rosterMember(1, "Alice", "alice@example.com"),
		rosterMember(2, "Bob", "bob@example.com"),
	}

	tests := []struct {
		name       string
		identifier string
		wantID     uint64
		wantOK     bool
	}{
		{"by display name", "Alice", 1, true},
		{"by email", "bob@example.com", 2, true},
		{"by user id string", "2", 2, true},
		{"unknown name", "Carol", 0, false},
		{"unknown email", "carol@example.com", 0, false},
		{"id outside roster", "99", 0, false},
		{"no partial name match", "Ali", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ResolveMember(tt.identifier, roster)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantID, id)
		})
	}
}

func TestResolveMember_NameBeatsEmail(t *testing.T) {
	// One member's display name is another member's email address; the
	// name match wins.
	roster := []models.ProjectMember{
		rosterMember(1, "Alice", "alice@example.com"),
		rosterMember(2, "alice@example.com", "other@example.com"),
	}

	id, ok := ResolveMember("alice@example.com", roster)
	require.True(t, ok)
	require.EqualValues(t, 2, id)
}

func TestResolveMember_EmptyRoster(t *testing.T) {
	_, ok := ResolveMember("Alice", nil)
	require.False(t, ok)
}
