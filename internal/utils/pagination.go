package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/constants"
)

// PaginationParams is the validated page window for a list request.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse is the pagination block returned with list payloads.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams reads page and limit from the query string. Out of
// range values are clamped rather than rejected; a list request never
// fails on pagination input alone.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < constants.MinPageSize {
		page = constants.MinPageSize
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < constants.MinPageSize {
		limit = constants.DefaultPageSize
	} else if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
