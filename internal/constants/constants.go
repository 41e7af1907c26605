package constants

// Session / context keys
const (
	SessionCookieName = "projecthub_session"
	ContextKeyUserID  = "user_id"
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Validation limits
const (
	MinPasswordLength    = 8
	MaxGeneratedSubtasks = 30
	MaxSkillsPerUser     = 50
	MaxSkillNameLength   = 100
)
