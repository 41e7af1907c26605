package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/database"
	"github.com/mizuka-dev/projecthub-api/internal/dto"
	apierrors "github.com/mizuka-dev/projecthub-api/internal/errors"
	"github.com/mizuka-dev/projecthub-api/internal/middleware"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/services"
)

// TaskHandler coordinates the project task board and subtask
// materialization.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListProjectTasks returns a project's tasks with resolved skills and
// assignees. Project access is checked by middleware.
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	tasks, err := h.taskService.ListProjectTasks(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// UpdateTaskStatus moves a task between workflow columns. Task access is
// checked by middleware.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateStatus(task.ID, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// SaveTasks materializes proposed subtasks into the project's task list,
// replacing whatever was there.
func (h *TaskHandler) SaveTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SaveTasksRequest struct {
		ProjectID uint64                   `json:"project_id" binding:"required"`
		Subtasks  []models.ProposedSubtask `json:"subtasks" binding:"required"`
	}

	var req SaveTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// The project ID arrives in the body, so membership is checked here
	// rather than by the URL-parameter middleware.
	var member models.ProjectMember
	if err := database.GetDB().
		Where("project_id = ? AND user_id = ?", req.ProjectID, userID).
		First(&member).Error; err != nil {
		apierrors.Forbidden(c, "You are not a member of this project")
		return
	}

	tasks, err := h.taskService.Materialize(req.ProjectID, req.Subtasks)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoSubtasksToSave),
		errors.Is(err, services.ErrSubtaskTitleEmpty),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
