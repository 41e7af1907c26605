package repository

import (
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/utils"
)

// UserRepository defines the interface for user and profile data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users (admin view), paginated
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// SetBanned flips a user's banned flag to the given value
	SetBanned(id uint64, banned bool) error

	// FindProfileByUserID finds the profile owned by a user
	FindProfileByUserID(userID uint64) (*models.Profile, error)

	// SaveProfile creates or updates a profile
	SaveProfile(profile *models.Profile) error
}

// SkillRepository defines the interface for the skill catalog and
// user-skill links
type SkillRepository interface {
	// ListAll returns the full skill catalog
	ListAll() ([]models.Skill, error)

	// ResolveOrCreate maps each input name to a durable skill ID,
	// creating missing catalog entries. Names are normalized (trimmed,
	// lowercased) before lookup; the returned map is keyed by the
	// normalized names. A unique-constraint race during creation is
	// recovered by re-resolving, not surfaced.
	ResolveOrCreate(names []string) (map[string]uint64, error)

	// ListUserSkills returns a user's skill links with skills preloaded
	ListUserSkills(userID uint64) ([]models.UserSkill, error)

	// ApplySkillDiff removes and adds user-skill links in one transaction
	ApplySkillDiff(userID uint64, removeIDs, addIDs []uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project and its creator membership atomically
	Create(project *models.Project, creatorRole models.ProjectRole) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// ListForUser lists projects the user is a member of, paginated
	ListForUser(userID uint64, params utils.PaginationParams) ([]models.ProjectMember, int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project and all owned rows in one transaction
	Delete(id uint64) error

	// AddMember adds a member to a project
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a member from a project
	RemoveMember(projectID, userID uint64) error

	// FindMember finds a specific project membership
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// ListMembers lists a project's members with users, profiles and
	// skills preloaded (the roster used for prompts and resolution)
	ListMembers(projectID uint64) ([]models.ProjectMember, error)
}

// TaskDraft is an unpersisted task produced from a proposed subtask after
// member resolution. SkillNames are still raw; they are resolved against
// the catalog inside the replace transaction.
type TaskDraft struct {
	Title         string
	Description   string
	Note          *string
	SkillNames    []string
	AssigneeIDs   []uint64
	AssigneeHints []string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject lists a project's tasks with skills and members
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// ReplaceProjectTasks replaces a project's entire task list in one
	// transaction: existing tasks and their links are deleted, then one
	// task per draft is created in order with its skill and member
	// links. Any failure rolls the whole unit back, including the
	// delete.
	ReplaceProjectTasks(projectID uint64, drafts []TaskDraft) ([]models.Task, error)
}

// SnapshotRepository defines the interface for generated-subtask snapshots
type SnapshotRepository interface {
	// Create inserts a new snapshot row (superseding earlier ones)
	Create(snapshot *models.SubtaskSnapshot) error

	// FindByID finds a snapshot by ID
	FindByID(id uint64) (*models.SubtaskSnapshot, error)

	// FindLatestByProject returns the most recent snapshot for a project
	FindLatestByProject(projectID uint64) (*models.SubtaskSnapshot, error)

	// Update persists an edited snapshot
	Update(snapshot *models.SubtaskSnapshot) error
}
