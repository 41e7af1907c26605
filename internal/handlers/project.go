package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/dto"
	apierrors "github.com/mizuka-dev/projecthub-api/internal/errors"
	"github.com/mizuka-dev/projecthub-api/internal/middleware"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/services"
	"github.com/mizuka-dev/projecthub-api/internal/utils"
)

// ProjectHandler coordinates project CRUD and roster management.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name        string     `json:"name" binding:"required"`
		Description string     `json:"description"`
		Deadline    *time.Time `json:"deadline"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   userID,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns the caller's projects with their role in each.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	memberships, total, err := h.projectService.ListProjectsForUser(userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list projects")
		return
	}

	projects := make([]dto.ProjectWithRoleDTO, len(memberships))
	for i, membership := range memberships {
		projects[i] = dto.ToProjectWithRoleDTO(membership)
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetProject returns a project with its roster.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	member, ok := middleware.GetProjectMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	_, members, err := h.projectService.GetProjectWithMembers(project.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(project, members, member.Role))
}

// UpdateProject updates a project's name, description or deadline.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateProjectInput
	if name, ok := rawReq["name"].(string); ok {
		input.Name = &name
	}
	if description, ok := rawReq["description"].(string); ok {
		input.Description = &description
	}
	if _, present := rawReq["deadline"]; present {
		if rawReq["deadline"] == nil {
			input.ClearDeadline = true
		} else if deadlineStr, ok := rawReq["deadline"].(string); ok {
			parsed, err := time.Parse(time.RFC3339, deadlineStr)
			if err != nil {
				apierrors.BadRequest(c, "Invalid deadline format")
				return
			}
			input.Deadline = &parsed
		}
	}

	updated, err := h.projectService.UpdateProject(project.ID, userID, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

// DeleteProject removes a project and everything it owns.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.DeleteProject(project.ID, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// InviteMember adds an existing user to the roster by email.
func (h *ProjectHandler) InviteMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type InviteMemberRequest struct {
		Email string             `json:"email" binding:"required,email"`
		Role  models.ProjectRole `json:"role"`
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Role == models.RoleCreator {
		apierrors.BadRequest(c, "Cannot invite a member as creator")
		return
	}

	if err := h.projectService.InviteMemberByEmail(project.ID, userID, req.Email, req.Role); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User has been added to the project",
	})
}

// RemoveMember removes a member from the roster.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.projectService.RemoveMember(project.ID, userID, targetID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidProjectName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrProjectMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectCreator),
		errors.Is(err, services.ErrNotProjectManager):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvitedUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyProjectMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCannotRemoveYourself),
		errors.Is(err, services.ErrCannotRemoveCreator):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
