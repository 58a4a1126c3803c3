// Package waitlist implements the signup ledger behind the landing page:
// idempotent signup creation, referral-code generation, queue position and
// the total-count stat. It trusts callers to validate field presence before
// calling in.
package waitlist

import "os"

// DefaultArea tags every signup of this deployment. Stored in the `area`
// column and used to scope position and stats queries.
const DefaultArea = "valby"

// Buildings kept for a future building-scoped deployment; the waitlist is
// currently open for everyone and `building` never scopes anything.
var Buildings = []string{
	"Syren Hus",
	"Hortensia Hus",
	"Lathyrus Hus",
	"Rhododendron Hus",
	"Ranunkel Hus",
	"Verbena Hus (karréen)",
	"Spirea Hus",
	"Hibiscus Hus",
	"Røllike Hus",
	"Primula Hus",
	"Astilbe Hus",
	"Amaryllis Hus",
	"Astrantia Hus",
	"Geranium Rækkerne",
	"Verbena Hus Tårnet",
	"Akeleje Hus",
	"Magnolia Hus",
	"Bofællesskabet Spir",
	"Kamelia Hus",
	"Asters Rækkerne",
	"Fresia Hus",
	"Hosta Hus",
	"Dahlia Hus",
	"Torveporten",
	"Iris Hus",
	"Filippa Haven",
}

// Interests are the selectable tags on the signup form. Anything else is
// dropped at the validation boundary.
var Interests = []string{
	"Kaffe",
	"Gåtur",
	"Træning",
	"Brætspil",
	"Mad",
	"Andet",
}

func Area() string {
	if area, ok := os.LookupEnv("WAITLIST_AREA"); ok && len(area) != 0 {
		return area
	}
	return DefaultArea
}

func IsKnownInterest(tag string) bool {
	for _, x := range Interests {
		if x == tag {
			return true
		}
	}
	return false
}
