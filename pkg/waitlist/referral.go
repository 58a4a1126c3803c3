package waitlist

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

const referralCodeLen = 8

// MakeReferralCode returns an 8-character uppercase base64url code. Codes
// are not checked for collisions here; the unique index on
// waitlist_signups.referral_code rejects the (astronomically rare) repeat at
// insert time.
func MakeReferralCode() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process has no usable entropy
		// source; nothing sane can continue from here.
		panic(fmt.Sprintf("failed to read from random source: %v", err))
	}

	code := base64.RawURLEncoding.EncodeToString(b)
	return strings.ToUpper(code[:referralCodeLen])
}
