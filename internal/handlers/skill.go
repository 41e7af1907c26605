package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/dto"
	apierrors "github.com/mizuka-dev/projecthub-api/internal/errors"
	"github.com/mizuka-dev/projecthub-api/internal/services"
)

// SkillHandler serves the global skill catalog.
type SkillHandler struct {
	skillService *services.SkillService
}

// NewSkillHandler creates a new SkillHandler.
func NewSkillHandler(skillService *services.SkillService) *SkillHandler {
	return &SkillHandler{
		skillService: skillService,
	}
}

// ListSkills returns the full catalog.
func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.skillService.ListCatalog()
	if err != nil {
		apierrors.InternalError(c, "Failed to list skills")
		return
	}

	dtos := make([]dto.SkillDTO, len(skills))
	for i, skill := range skills {
		dtos[i] = dto.ToSkillDTO(skill)
	}

	c.JSON(http.StatusOK, dtos)
}
