package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Signup is one row per person on the waitlist. Rows are written once and
// never updated or deleted by the API.
type Signup struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Area         string         `json:"area" gorm:"index;not null"`
	FirstName    string         `json:"first_name" gorm:"not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	Building     *string        `json:"building"`
	Interests    pq.StringArray `json:"interests" gorm:"type:text[]"`
	ReferralCode string         `json:"referral_code" gorm:"uniqueIndex;not null"`
	ReferredBy   *string        `json:"referred_by"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (Signup) TableName() string {
	return "waitlist_signups"
}
