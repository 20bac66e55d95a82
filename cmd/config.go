package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"myscraper/adapters/myredis"
	"myscraper/domain"

	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envSleepTime        = "SLEEP_TIME"
	envPrometheusScheme = "PROMETHEUS_SCHEME"
	envPrometheusHost   = "PROMETHEUS_HOST"
	envPrometheusPort   = "PROMETHEUS_PORT"
	envHostsFile        = "HOSTS_FILE"
	envQueriesPath      = "QUERIES_PATH"
	envRedisAddr        = "REDIS_ADDR"
	envSnapshotTTLMs    = "SNAPSHOT_TTL_MS"
	envHTTPPort         = "SERVICE_PORT_HTTP"
	envLogLevel         = "LOG_LEVEL"
)

// Defaults applied when the variable is unset or blank.
const (
	defaultSleepTime        = 5
	defaultPrometheusScheme = "http"
	defaultPrometheusHost   = "prometheus"
	defaultPrometheusPort   = 9090
	defaultHostsFile        = "/hosts.json"
	defaultLogLevel         = "info"
	defaultRedisDialTimeout = 5 * time.Second
)

type PrometheusConfig struct {
	Scheme string
	Host   string
	Port   int
}

// BaseURL returns scheme://host:port.
func (p PrometheusConfig) BaseURL() string {
	return p.Scheme + "://" + net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

type MyScraperConfig struct {
	SleepTime     time.Duration
	Prometheus    PrometheusConfig
	HostsFile     string
	Queries       domain.QuerySet
	Redis         myredis.RedisConfig // Addr is empty when redis is disabled
	SnapshotTTLMs int
	HTTPPort      int // 0 disables the HTTP API
	LogLevel      level.Option
}

// yamlConfig is the root of the QUERIES_PATH file.
type yamlConfig struct {
	Queries yamlQueries `yaml:"queries"`
}

type yamlQueries struct {
	JitsiParticipants string `yaml:"jitsi_participants"`
	JitsiCPUUsage     string `yaml:"jitsi_cpu_usage"`
	EdumeetProbe      string `yaml:"edumeet_probe"`
	EdumeetCPUUsage   string `yaml:"edumeet_cpu_usage"`
	EdumeetPeers      string `yaml:"edumeet_peers"`
}

// LoadConfig loads configuration from environment variables. Every variable is optional.
func LoadConfig() (*MyScraperConfig, error) {
	sleepTime, err := intEnv(envSleepTime, defaultSleepTime)
	if err != nil {
		return nil, err
	}
	if sleepTime <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer (seconds), got %d", envSleepTime, sleepTime)
	}

	scheme := strings.ToLower(stringEnv(envPrometheusScheme, defaultPrometheusScheme))
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%s must be http|https, got %q", envPrometheusScheme, scheme)
	}

	port, err := intEnv(envPrometheusPort, defaultPrometheusPort)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("%s must be 1-65535, got %d", envPrometheusPort, port)
	}

	queries := domain.DefaultQuerySet()
	if path := strings.TrimSpace(os.Getenv(envQueriesPath)); path != "" {
		if !filepath.IsAbs(path) {
			abs, absErr := filepath.Abs(path)
			if absErr != nil {
				return nil, absErr
			}
			path = abs
		}
		raw, err := loadYAMLConfig(path)
		if err != nil {
			return nil, fmt.Errorf("load queries %s: %w", path, err)
		}
		queries = overrideQueries(queries, raw.Queries)
	}

	ttlMs, err := intEnv(envSnapshotTTLMs, 0)
	if err != nil {
		return nil, err
	}
	if ttlMs < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", envSnapshotTTLMs, ttlMs)
	}

	httpPort, err := intEnv(envHTTPPort, 0)
	if err != nil {
		return nil, err
	}
	if httpPort < 0 || httpPort > 65535 {
		return nil, fmt.Errorf("%s must be 1-65535, got %d", envHTTPPort, httpPort)
	}

	logLevel, err := parseLogLevel(stringEnv(envLogLevel, defaultLogLevel))
	if err != nil {
		return nil, err
	}

	return &MyScraperConfig{
		SleepTime: time.Duration(sleepTime) * time.Second,
		Prometheus: PrometheusConfig{
			Scheme: scheme,
			Host:   stringEnv(envPrometheusHost, defaultPrometheusHost),
			Port:   port,
		},
		HostsFile: stringEnv(envHostsFile, defaultHostsFile),
		Queries:   queries,
		Redis: myredis.RedisConfig{
			Addr:        strings.TrimSpace(os.Getenv(envRedisAddr)),
			DialTimeout: defaultRedisDialTimeout,
		},
		SnapshotTTLMs: ttlMs,
		HTTPPort:      httpPort,
		LogLevel:      logLevel,
	}, nil
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// overrideQueries replaces the expressions set in raw; blank entries keep the defaults.
func overrideQueries(q domain.QuerySet, raw yamlQueries) domain.QuerySet {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&q.JitsiParticipants, raw.JitsiParticipants)
	set(&q.JitsiCPUUsage, raw.JitsiCPUUsage)
	set(&q.EdumeetProbe, raw.EdumeetProbe)
	set(&q.EdumeetCPUUsage, raw.EdumeetCPUUsage)
	set(&q.EdumeetPeers, raw.EdumeetPeers)
	return q
}

func parseLogLevel(s string) (level.Option, error) {
	switch strings.ToLower(s) {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("%s must be debug|info|warn|error, got %q", envLogLevel, s)
	}
}

func stringEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func intEnv(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}
