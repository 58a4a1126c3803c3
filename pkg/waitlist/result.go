package waitlist

import (
	"net/url"
	"strconv"
)

type Reason string

const (
	ReasonDuplicate    Reason = "duplicate"
	ReasonInsertFailed Reason = "insert_failed"
	ReasonNoID         Reason = "no_id"
)

// SignupResult is the tagged outcome of CreateSignup. Exactly four variants
// exist: success (OK true, Position possibly nil when resolution failed),
// duplicate, insert_failed and no_id. Message is always a generic,
// user-safe string; store diagnostics are only ever logged.
type SignupResult struct {
	OK           bool   `json:"ok"`
	Reason       Reason `json:"reason,omitempty"`
	Message      string `json:"message,omitempty"`
	Position     *int64 `json:"position"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// Values encodes the outcome as a flat string map so it can survive a
// redirect's query string. ParseResult is the inverse.
func (r SignupResult) Values() url.Values {
	v := url.Values{}

	if !r.OK {
		v.Set("ok", "0")
		v.Set("reason", string(r.Reason))
		return v
	}

	v.Set("ok", "1")
	v.Set("code", r.ReferralCode)
	if r.Position != nil {
		v.Set("position", strconv.FormatInt(*r.Position, 10))
	}

	return v
}

func ParseResult(v url.Values) SignupResult {
	r := SignupResult{}

	if v.Get("ok") != "1" {
		r.Reason = Reason(v.Get("reason"))
		return r
	}

	r.OK = true
	r.ReferralCode = v.Get("code")
	if pos, err := strconv.ParseInt(v.Get("position"), 10, 64); err == nil {
		r.Position = &pos
	}

	return r
}
