package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all bot configuration. Values come from the environment
// (GitHub Actions secrets in CI, a .env file locally).
type Config struct {
	Facebook Facebook
	Twitter  Twitter
	Paths    Paths
	Schedule Schedule
	Server   Server
	Database Database

	LogLevel string `env:"LOG_LEVEL" env-default:"INFO"`
}

// Facebook holds page publishing credentials. The bot posts directly as
// the page, so only the page ID and a page access token are needed.
type Facebook struct {
	PageID       string `env:"FB_PAGE_ID"`
	AccessToken  string `env:"FB_ACCESS_TOKEN"`
	GraphVersion string `env:"FB_GRAPH_VERSION" env-default:"v18.0"`
}

// Twitter holds OAuth 1.0a user-context credentials. The bearer token is
// kept alongside them for app-only read calls.
type Twitter struct {
	ConsumerKey    string `env:"TW_CONSUMER_KEY"`
	ConsumerSecret string `env:"TW_CONSUMER_SECRET"`
	AccessToken    string `env:"TW_ACCESS_TOKEN"`
	AccessSecret   string `env:"TW_ACCESS_SECRET"`
	BearerToken    string `env:"TW_BEARER_TOKEN"`
}

type Paths struct {
	ContentDir string `env:"CONTENT_DIR" env-default:"./content"`
	StateDir   string `env:"STATE_DIR" env-default:"."`
	LogFile    string `env:"LOG_FILE" env-default:"logs.txt"`
}

// Schedule holds the cron specs used by `run` mode. The defaults mirror
// the repository's GitHub Actions crons: daily posts on Monday and
// Thursday mornings, Friday posts on Friday, Ramadan posts every dawn
// while the Ramadan rotation is enabled.
type Schedule struct {
	Daily          string `env:"SCHEDULE_DAILY" env-default:"0 9 * * 1,4"`
	Friday         string `env:"SCHEDULE_FRIDAY" env-default:"0 9 * * 5"`
	Ramadan        string `env:"SCHEDULE_RAMADAN" env-default:"0 4 * * *"`
	RamadanEnabled bool   `env:"RAMADAN_ENABLED" env-default:"false"`
}

// Server configures the optional status/admin HTTP server. Admin login is
// disabled until ADMIN_PASSWORD_HASH (a bcrypt hash) is set.
type Server struct {
	Port              string `env:"PORT" env-default:"8080"`
	JWTSecret         string `env:"JWT_SECRET" env-default:"change-me-in-production"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

// Database configures the optional run-history store. An empty URL
// disables history entirely.
type Database struct {
	URL string `env:"DATABASE_URL"`
}

func Load() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return &cfg
}
