package main

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/loonies/api/pkg/cache"
	"github.com/loonies/api/pkg/database"
	"github.com/loonies/api/pkg/routes"
)

var (
	redisClient *redis.Client

	ADDR,
	REDIS_HOST,
	REDIS_PORT,
	POSTGRES_HOST,
	POSTGRES_PORT,
	POSTGRES_USER,
	POSTGRES_PASSWORD,
	POSTGRES_DB string

	REQUIRED_ENV = []string{
		"ADDR",
		"REDIS_HOST",
		"REDIS_PORT",
		"POSTGRES_HOST",
		"POSTGRES_PORT",
		"POSTGRES_USER",
		"POSTGRES_PASSWORD",
		"POSTGRES_DB",
	}
)

func init() {
	godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ADDR = os.Getenv("ADDR")
	REDIS_HOST = os.Getenv("REDIS_HOST")
	REDIS_PORT = os.Getenv("REDIS_PORT")
	POSTGRES_HOST = os.Getenv("POSTGRES_HOST")
	POSTGRES_PORT = os.Getenv("POSTGRES_PORT")
	POSTGRES_USER = os.Getenv("POSTGRES_USER")
	POSTGRES_PASSWORD = os.Getenv("POSTGRES_PASSWORD")
	POSTGRES_DB = os.Getenv("POSTGRES_DB")

	missing := checkenv(REQUIRED_ENV)

	if len(missing) != 0 {
		log.Fatal().
			Str("missing", strings.Join(missing, ", ")).
			Msg("missing required env")
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr: REDIS_HOST + ":" + REDIS_PORT,
	})
	cache.InitStatsCache(redisClient)

	pgConnUrl := url.URL{
		User:   url.UserPassword(POSTGRES_USER, POSTGRES_PASSWORD),
		Scheme: "postgres",
		Host:   POSTGRES_HOST + ":" + POSTGRES_PORT,
		Path:   POSTGRES_DB,
		RawQuery: url.Values{
			"sslmode": {"disable"},
		}.Encode(),
	}

	d, err := gorm.Open(postgres.Open(pgConnUrl.String()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	database.InitDatabase(d)
}

func main() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Mount("/waitlist", routes.WaitlistRoutes{}.Routes())

	log.Info().Str("addr", ADDR).Msg("starting waitlist api")

	if err := http.ListenAndServe(ADDR, r); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func checkenv(keys []string) []string {
	var missing []string
	for _, key := range keys {
		if val, ok := os.LookupEnv(key); len(val) == 0 || !ok {
			missing = append(missing, key)
		}
	}

	return missing
}
