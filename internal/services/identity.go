package services

import (
	"strconv"

	"github.com/mizuka-dev/projecthub-api/internal/models"
)

// ResolveMember maps a human-readable member identifier to a durable user
// ID within a project roster. Display name is matched before email, both
// exact. Identifiers that are already decimal user IDs are accepted only
// when the ID belongs to the roster; anything else stays unresolved and
// the caller decides where to keep the literal string.
func ResolveMember(identifier string, roster []models.ProjectMember) (uint64, bool) {
	for _, member := range roster {
		if member.User.Name == identifier {
			return member.UserID, true
		}
	}
	for _, member := range roster {
		if member.User.Email == identifier {
			return member.UserID, true
		}
	}

	if id, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		for _, member := range roster {
			if member.UserID == id {
				return id, true
			}
		}
	}

	return 0, false
}
