package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// StaticBase is the URL prefix fragments reference css/js under.
	StaticBase string

	AuthHMACSecret string
	// Workbench login accounts, bcrypt-hashed.
	WorkbenchUser     string
	WorkbenchPassHash string

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:          addr,
		DBDriver:          envOr("DB_DRIVER", "sqlite"),
		DBDSN:             envOr("DB_DSN", ""),
		StaticBase:        envOr("STATIC_BASE", "/static"),
		AuthHMACSecret:    envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		WorkbenchUser:     envOr("WORKBENCH_USER", "learner"),
		WorkbenchPassHash: envOr("WORKBENCH_PASS_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
		CORSOrigins:       csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
