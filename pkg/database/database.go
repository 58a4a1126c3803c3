package database

import (
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var db *gorm.DB
var initOnce sync.Once

func InitDatabase(d *gorm.DB) {
	initOnce.Do(func() {
		d.AutoMigrate(&Signup{})
		db = d
	})
}

func GetDatabase() *gorm.DB {
	return db
}

// GetSignupPosition returns the 1-based rank of a signup within its area,
// ordered by creation time. Equal timestamps are broken by ascending id so
// the rank is stable across reads.
func GetSignupPosition(db *gorm.DB, area string, signupID uuid.UUID) (int64, error) {
	var ranked struct {
		Position int64
	}

	res := db.Raw(`
		SELECT position
		FROM (
		  SELECT
		    id,
		    ROW_NUMBER() OVER (
		      ORDER BY created_at ASC, id ASC
		    ) AS position
		    FROM waitlist_signups
		    WHERE area = ?
		)
		AS ranked
		WHERE ranked.id = ?
	`, area, signupID).Scan(&ranked)

	if res.Error != nil {
		return 0, res.Error
	}

	return ranked.Position, nil
}

func CountSignups(db *gorm.DB, area string) (int64, error) {
	var count int64

	res := db.Model(&Signup{}).Where("area = ?", area).Count(&count)
	if res.Error != nil {
		return 0, res.Error
	}

	return count, nil
}
