package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/dto"
	apierrors "github.com/mizuka-dev/projecthub-api/internal/errors"
	"github.com/mizuka-dev/projecthub-api/internal/middleware"
	"github.com/mizuka-dev/projecthub-api/internal/services"
	"github.com/mizuka-dev/projecthub-api/internal/utils"
)

// AdminHandler exposes the user administration endpoints. All routes are
// gated by the admin middleware.
type AdminHandler struct {
	authService *services.AuthService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		authService: authService,
	}
}

// ListUsers returns a paginated listing of all registered users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.authService.ListUsers(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	userDTOs := make([]dto.AdminUserDTO, len(users))
	for i, user := range users {
		userDTOs[i] = dto.ToAdminUserDTO(user)
	}

	c.JSON(http.StatusOK, gin.H{
		"users": userDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// ToggleBan flips the banned flag on a user. Admins cannot ban
// themselves.
func (h *AdminHandler) ToggleBan(c *gin.Context) {
	adminID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}
	if targetID == adminID {
		apierrors.BadRequest(c, "Cannot change your own ban state")
		return
	}

	user, err := h.authService.ToggleBan(targetID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminUserDTO(*user))
}
