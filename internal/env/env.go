package env

import (
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// actual environment variables
var MONGO_URI string
var MONGO_DB string
var LOGS_COLLECTION string
var USERS_COLLECTION string
var EVENTS_COLLECTION string

var REDIS_ADDR string
var REDIS_PASSWORD string
var REDIS_DB int

var ORG_ID string
var LOGIN_PATH string
var LOGIN_METHOD string

var JWT_SECRET []byte

var TAILER_INTERVAL time.Duration
var TAILER_BACKOFF time.Duration
var USERS_CACHE_TTL time.Duration

var CORS_ORIGINS []string
var PREFORK bool
var DRAIN_MODE bool

// this is required
var VERSION string

func Init(envRoot string, appVersion string) {
	loadEnv(envRoot)
	loadVersion(appVersion)

	PREFORK, _ = strconv.ParseBool(os.Getenv("PREFORK"))
	DRAIN_MODE, _ = strconv.ParseBool(os.Getenv("DRAIN_MODE"))

	MONGO_URI = os.Getenv("MONGO_URI")
	MONGO_DB = stringOr("MONGO_DB", "audit")
	LOGS_COLLECTION = stringOr("LOGS_COLLECTION", "api_logs")
	USERS_COLLECTION = stringOr("USERS_COLLECTION", "users")
	EVENTS_COLLECTION = stringOr("EVENTS_COLLECTION", "stream_events")

	REDIS_ADDR = stringOr("REDIS_ADDR", "127.0.0.1:6379")
	REDIS_PASSWORD = os.Getenv("REDIS_PASSWORD")
	REDIS_DB = intOr("REDIS_DB", 15)

	ORG_ID = strings.TrimSpace(os.Getenv("ORG_ID"))
	LOGIN_PATH = stringOr("LOGIN_PATH", "/auth/v1/POSTuserauth")
	LOGIN_METHOD = strings.ToUpper(stringOr("LOGIN_METHOD", "POST"))

	JWT_SECRET = []byte(os.Getenv("JWT_SECRET"))

	TAILER_INTERVAL = durationOr("TAILER_INTERVAL", time.Second)
	TAILER_BACKOFF = durationOr("TAILER_BACKOFF", 5*time.Second)
	USERS_CACHE_TTL = durationOr("USERS_CACHE_TTL", 5*time.Minute)

	CORS_ORIGINS = listOr("CORS_ORIGINS", []string{"http://localhost:5173"})
}

func loadEnv(envRoot string) {
	if envRoot == "" {
		envRoot = repoRoot()
	}

	path := path.Join(envRoot, ".env")
	if err := godotenv.Overload(path); err != nil {
		// the process environment may already carry everything
		log.Printf("warning: env file %s not loaded: %v", path, err)
	}
}

func loadVersion(appVersion string) {
	if appVersion != "" {
		VERSION = appVersion
		return
	}

	data, err := os.ReadFile(filepath.Join(repoRoot(), "VERSION"))
	if err != nil {
		VERSION = "unknown"
		return
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed != "" {
		VERSION = trimmed
	} else {
		VERSION = "unknown"
	}
}

func stringOr(key string, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func durationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func listOr(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func repoRoot() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(b), "../..")
}
