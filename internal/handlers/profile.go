package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/dto"
	apierrors "github.com/mizuka-dev/projecthub-api/internal/errors"
	"github.com/mizuka-dev/projecthub-api/internal/middleware"
	"github.com/mizuka-dev/projecthub-api/internal/services"
)

// ProfileHandler serves the profile page data and the combined
// profile + skill update.
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile returns the caller's profile and skills.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	view, err := h.profileService.GetProfile(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(userID, view.Profile, view.Skills))
}

// UpdateProfile updates the caller's profile fields and reconciles their
// skill links against the submitted list. A payload naming another user
// is refused.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		UserID      uint64   `json:"user_id" binding:"required"`
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Skills      []string `json:"skills"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.UserID != userID {
		apierrors.Forbidden(c, "Cannot update another user's profile")
		return
	}

	err := h.profileService.UpdateProfileAndSkills(services.UpdateProfileInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Skills:      req.Skills,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTooManySkills),
			errors.Is(err, services.ErrSkillNameTooLong):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
