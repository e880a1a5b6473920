package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process level configuration. Fields left empty select the
// in-memory fallbacks so the service runs without infrastructure in dev.
type Server struct {
	Addr         string
	PostgresDSN  string
	RedisURL     string
	KafkaBrokers []string
	NotifyTopic  string
}

// Cache validity windows. The threshold window matches the settings refresh
// cadence; the alert window bounds how stale a served alert list may be.
var (
	ThresholdCacheTTL = 5 * time.Minute
	AlertCacheTTL     = 2 * time.Minute
)

// GenerateTimeout bounds one coalesced alert generation pass, entity fetch
// included. A hung upstream fails the whole batch instead of stalling it.
var GenerateTimeout = 10 * time.Second

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("VIGIL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	var brokers []string
	if raw := os.Getenv("VIGIL_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	topic := os.Getenv("VIGIL_NOTIFY_TOPIC")
	if topic == "" {
		topic = "vigil.notifications"
	}

	return Server{
		Addr:         addr,
		PostgresDSN:  os.Getenv("VIGIL_POSTGRES_DSN"),
		RedisURL:     os.Getenv("VIGIL_REDIS_URL"),
		KafkaBrokers: brokers,
		NotifyTopic:  topic,
	}
}
