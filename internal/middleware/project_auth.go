package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/database"
	apierrors "github.com/mizuka-dev/projecthub-api/internal/errors"
	"github.com/mizuka-dev/projecthub-api/internal/models"
)

// RequireProjectAccess checks if the user is a member of the project
// named by the :id URL parameter.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking project existence
		var member models.ProjectMember
		if err := database.GetDB().
			Where("project_id = ? AND user_id = ?", projectID, userID).
			First(&member).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set("project", project)
		c.Set("project_member", member)
		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess.
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get("project")
	if !exists {
		return models.Project{}, false
	}
	project, ok := value.(models.Project)
	return project, ok
}

// GetProjectMember retrieves the membership loaded by
// RequireProjectAccess.
func GetProjectMember(c *gin.Context) (models.ProjectMember, bool) {
	value, exists := c.Get("project_member")
	if !exists {
		return models.ProjectMember{}, false
	}
	member, ok := value.(models.ProjectMember)
	return member, ok
}
