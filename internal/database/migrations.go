package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for board filtering and sorting
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Project member indexes
		{"project_members", "idx_project_members_project_id", "project_id"},
		{"project_members", "idx_project_members_user_id", "user_id"},

		// Task link indexes
		{"task_skills", "idx_task_skills_task_id", "task_id"},
		{"task_members", "idx_task_members_task_id", "task_id"},
		{"task_members", "idx_task_members_user_id", "user_id"},

		// Latest-snapshot lookup per project
		{"subtask_snapshots", "idx_subtask_snapshots_project_id", "project_id"},

		// Profile lookup by owner
		{"profiles", "idx_profiles_user_id", "user_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
