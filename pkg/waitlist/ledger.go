package waitlist

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/loonies/api/pkg/database"
)

// uniqueViolation is the postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type SignupParams struct {
	FirstName  string
	Email      string
	Building   *string
	Interests  []string
	ReferredBy *string
}

// CreateSignup inserts a single waitlist row and resolves its queue
// position. Field presence has already been checked by the caller; this
// layer only normalizes (trim name, trim+lowercase email) and classifies
// store failures. A duplicate email is a normal outcome, not an error. A
// failed position lookup does not fail the signup: the row exists, so the
// result is success with a nil position.
func CreateSignup(db *gorm.DB, params SignupParams) SignupResult {
	referralCode := MakeReferralCode()

	sig := database.Signup{
		Area:         Area(),
		FirstName:    strings.TrimSpace(params.FirstName),
		Email:        strings.ToLower(strings.TrimSpace(params.Email)),
		Building:     params.Building,
		ReferralCode: referralCode,
		ReferredBy:   params.ReferredBy,
	}
	if len(params.Interests) > 0 {
		sig.Interests = pq.StringArray(params.Interests)
	}

	res := db.Create(&sig)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return SignupResult{Reason: ReasonDuplicate}
		}

		logStoreError("waitlist insert failed", res.Error)
		return SignupResult{
			Reason:  ReasonInsertFailed,
			Message: "Insert failed",
		}
	}

	if sig.ID == uuid.Nil {
		return SignupResult{
			Reason:  ReasonNoID,
			Message: "Insert succeeded but no ID returned",
		}
	}

	result := SignupResult{
		OK:           true,
		ReferralCode: referralCode,
	}

	pos, err := database.GetSignupPosition(db, sig.Area, sig.ID)
	if err != nil {
		logStoreError("waitlist position lookup failed", err)
		return result
	}

	result.Position = &pos
	return result
}

// isDuplicate matches the store's unique-violation signal, either by the
// postgres error code or by message sniffing for drivers that do not
// surface a typed error.
func isDuplicate(err error) bool {
	var e *pgconn.PgError
	if errors.As(err, &e) && e.Code == uniqueViolation {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique") ||
		strings.Contains(msg, "violates unique constraint")
}

// logStoreError keeps the store's full diagnostics server-side; callers
// only ever see the generic messages in SignupResult.
func logStoreError(what string, err error) {
	ev := log.Error().Err(err)

	var e *pgconn.PgError
	if errors.As(err, &e) {
		ev = ev.
			Str("code", e.Code).
			Str("detail", e.Detail).
			Str("hint", e.Hint)
	}

	ev.Msg(what)
}
