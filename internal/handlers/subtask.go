package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/database"
	"github.com/mizuka-dev/projecthub-api/internal/dto"
	apierrors "github.com/mizuka-dev/projecthub-api/internal/errors"
	"github.com/mizuka-dev/projecthub-api/internal/middleware"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/services"
)

// SubtaskHandler coordinates AI subtask generation and snapshot edits.
type SubtaskHandler struct {
	subtaskService *services.SubtaskService
}

// NewSubtaskHandler creates a new SubtaskHandler.
func NewSubtaskHandler(subtaskService *services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{
		subtaskService: subtaskService,
	}
}

// GenerateSubtasks runs the proposal generator for a project and stores
// the result as a new snapshot. Project access is checked by middleware.
func (h *SubtaskHandler) GenerateSubtasks(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	snapshot, err := h.subtaskService.Generate(c.Request.Context(), project.ID)
	if err != nil {
		respondSubtaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotDTO(*snapshot))
}

// GetLatestSnapshot returns the most recent snapshot for a project.
func (h *SubtaskHandler) GetLatestSnapshot(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	snapshot, err := h.subtaskService.GetLatest(project.ID)
	if err != nil {
		respondSubtaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotDTO(*snapshot))
}

// UpdateSnapshot patches a snapshot's subtask list in place. The caller
// must be a member of the snapshot's project.
func (h *SubtaskHandler) UpdateSnapshot(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	snapshotID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid snapshot ID")
		return
	}

	type UpdateSnapshotRequest struct {
		Subtasks []models.ProposedSubtask `json:"subtasks" binding:"required"`
	}

	var req UpdateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	snapshot, err := h.subtaskService.GetSnapshot(snapshotID)
	if err != nil {
		respondSubtaskError(c, err)
		return
	}

	// Return 404 instead of 403 to avoid leaking snapshot existence
	var member models.ProjectMember
	if err := database.GetDB().
		Where("project_id = ? AND user_id = ?", snapshot.ProjectID, userID).
		First(&member).Error; err != nil {
		apierrors.NotFound(c, "Snapshot not found")
		return
	}

	updated, err := h.subtaskService.UpdateSnapshot(snapshotID, req.Subtasks)
	if err != nil {
		respondSubtaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotDTO(*updated))
}

func respondSubtaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrEmptySubtaskList):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSnapshotNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNoSubtasksGenerated):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
