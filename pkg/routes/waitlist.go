package routes

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/httprate"

	"github.com/loonies/api/pkg/cache"
	"github.com/loonies/api/pkg/database"
	"github.com/loonies/api/pkg/models"
	"github.com/loonies/api/pkg/waitlist"
)

var referralPattern = regexp.MustCompile(`^[A-Z0-9_-]{8}$`)

type WaitlistRoutes struct{}

func (wr WaitlistRoutes) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(2, 5*time.Minute, httprate.WithKeyFuncs(
			httprate.KeyByEndpoint,
			httprate.KeyByIP,
		)))

		r.Post("/signup", wr.CreateSignup)
		r.Post("/signup/form", wr.CreateSignupForm)
	})

	r.Get("/stats", wr.GetStats)

	return r
}

type CreateSignupPayload struct {
	FirstName  string   `json:"first_name"`
	Email      string   `json:"email"`
	Building   *string  `json:"building"`
	Interests  []string `json:"interests"`
	ReferredBy *string  `json:"referred_by"`
}

// CreateSignup is the JSON signup endpoint and the validation boundary: by
// the time the ledger runs, required fields are known to be non-empty.
func (wr WaitlistRoutes) CreateSignup(w http.ResponseWriter, r *http.Request) {
	var body CreateSignupPayload
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write(models.CreateError("Failed to parse JSON payload"))
		return
	}

	params, ok := validateSignup(body)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		w.Write(models.CreateError("First name and email are required"))
		return
	}

	result := waitlist.CreateSignup(database.GetDatabase(), params)
	writeSignupResult(w, result)
}

// CreateSignupForm accepts the landing-page form post and round-trips the
// outcome through the thank-you redirect's query string, so the page can
// render it after a plain browser navigation.
func (wr WaitlistRoutes) CreateSignupForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write(models.CreateError("Failed to parse form payload"))
		return
	}

	var building *string
	if b := strings.TrimSpace(r.PostForm.Get("building")); b != "" {
		building = &b
	}

	body := CreateSignupPayload{
		FirstName: r.PostForm.Get("first_name"),
		Email:     r.PostForm.Get("email"),
		Building:  building,
		Interests: r.PostForm["interests"],
	}
	if ref := r.Form.Get("ref"); ref != "" {
		body.ReferredBy = &ref
	}

	params, ok := validateSignup(body)
	if !ok {
		redirectWithValues(w, r, url.Values{
			"ok":     {"0"},
			"reason": {"validation"},
		})
		return
	}

	result := waitlist.CreateSignup(database.GetDatabase(), params)
	redirectWithValues(w, r, result.Values())
}

func (wr WaitlistRoutes) GetStats(w http.ResponseWriter, r *http.Request) {
	db := database.GetDatabase()

	statsCache := cache.GetStatsCache()
	if statsCache.RedisClient == nil {
		writeStats(w, waitlist.GetTotalStats(db))
		return
	}

	cached, shouldRefresh, _ := statsCache.Get()
	if cached != nil && !shouldRefresh {
		writeStats(w, waitlist.Stats{Count: *cached})
		return
	}

	stats := waitlist.GetTotalStats(db)
	statsCache.Set(stats.Count)

	writeStats(w, stats)
}

// validateSignup enforces the caller-side contract of the ledger: trimmed,
// non-empty name and email, whitelisted interests, and a referral
// attribution that at least looks like one of our codes.
func validateSignup(body CreateSignupPayload) (waitlist.SignupParams, bool) {
	params := waitlist.SignupParams{
		FirstName: strings.TrimSpace(body.FirstName),
		Email:     strings.TrimSpace(body.Email),
		Building:  body.Building,
	}

	if params.FirstName == "" || params.Email == "" {
		return waitlist.SignupParams{}, false
	}

	for _, tag := range body.Interests {
		if waitlist.IsKnownInterest(tag) {
			params.Interests = append(params.Interests, tag)
		}
	}

	if body.ReferredBy != nil {
		ref := strings.ToUpper(strings.TrimSpace(*body.ReferredBy))
		if referralPattern.MatchString(ref) {
			params.ReferredBy = &ref
		}
	}

	return params, true
}

func writeSignupResult(w http.ResponseWriter, result waitlist.SignupResult) {
	switch {
	case result.OK:
		b, err := json.Marshal(result)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Write(b)

	case result.Reason == waitlist.ReasonDuplicate:
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write(models.CreateError("You are already on the waitlist"))

	default:
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(models.CreateError("Something went wrong, please try again"))
	}
}

func writeStats(w http.ResponseWriter, stats waitlist.Stats) {
	b, err := json.Marshal(stats)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.Write(b)
}

func redirectWithValues(w http.ResponseWriter, r *http.Request, v url.Values) {
	http.Redirect(w, r, thankYouPath()+"?"+v.Encode(), http.StatusSeeOther)
}

func thankYouPath() string {
	if path, ok := os.LookupEnv("THANKYOU_PATH"); ok && len(path) != 0 {
		return path
	}
	return "/waitlist"
}
