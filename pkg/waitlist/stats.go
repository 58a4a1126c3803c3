package waitlist

import (
	"gorm.io/gorm"

	"github.com/loonies/api/pkg/database"
)

type Stats struct {
	Count int64 `json:"count"`
}

// GetTotalStats returns the number of signups in this deployment's area.
// The number is display-only and fails open: on a store error the count is
// reported as 0 rather than surfacing an error. Nothing may gate on it.
func GetTotalStats(db *gorm.DB) Stats {
	count, err := database.CountSignups(db, Area())
	if err != nil {
		logStoreError("waitlist count failed", err)
		return Stats{Count: 0}
	}

	return Stats{Count: count}
}
