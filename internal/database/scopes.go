package database

import (
	"gorm.io/gorm"

	"github.com/mizuka-dev/projecthub-api/internal/utils"
)

// Paginate is a query scope applying a validated page window. Used by the
// list repositories so offset/limit handling stays in one place.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
