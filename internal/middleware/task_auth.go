package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/database"
	apierrors "github.com/mizuka-dev/projecthub-api/internal/errors"
	"github.com/mizuka-dev/projecthub-api/internal/models"
)

// RequireTaskAccess checks if the user has access to a task: the user
// must be a member of the task's project.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking task existence
		var member models.ProjectMember
		if err := database.GetDB().
			Where("project_id = ? AND user_id = ?", task.ProjectID, userID).
			First(&member).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set("task", task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskAccess.
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get("task")
	if !exists {
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	return task, ok
}
