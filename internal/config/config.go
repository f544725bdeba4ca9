// Package config manages application configuration from environment variables and .env files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fitz/cockpit/internal/status"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendNeo4j    = "neo4j"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Keys lists every configuration key with its default value.
var Keys = map[string]string{
	"COCKPIT_BACKEND":          BackendSQLite,
	"COCKPIT_ID":               "default",
	"COCKPIT_NAME":             "Cockpit",
	"COCKPIT_SQLITE_PATH":      "cockpit.db",
	"COCKPIT_POSTGRES_DSN":     "",
	"COCKPIT_MANAGE_CONTAINER": "false",
	"COCKPIT_LOG_LEVEL":        "info",
	"COCKPIT_STATUS_RANKING":   "",
	"COCKPIT_SYNC_NAME":        "false",
	"NEO4J_URI":                "neo4j://localhost:7687",
	"NEO4J_USERNAME":           "neo4j",
	"NEO4J_PASSWORD":           "",
	"NEO4J_DATABASE":           "neo4j",
	"NEO4J_IMAGE":              "neo4j:5.25-community",
	"NEO4J_CONTAINER_NAME":     "cockpit-neo4j",
}

// Config holds the application configuration.
type Config struct {
	Backend         string
	CockpitID       string
	CockpitName     string
	SQLitePath      string
	PostgresDSN     string
	ManageContainer bool
	LogLevel        string
	StatusRanking   string
	SyncName        bool

	Neo4jURI      string
	Neo4jUsername string
	Neo4jPassword string
	Neo4jDatabase string
	Neo4jImage    string
	ContainerName string
}

// sources resolves a key with precedence local .env > global config >
// environment > default.
type sources struct {
	local  map[string]string
	global map[string]string
}

func readSources(dir string) sources {
	local, err := godotenv.Read(GetConfigPath(dir))
	if err != nil {
		local = make(map[string]string)
	}
	global, err := godotenv.Read(GetGlobalConfigPath())
	if err != nil {
		global = make(map[string]string)
	}
	return sources{local: local, global: global}
}

func (s sources) get(key string) string {
	if value, ok := s.local[key]; ok && value != "" {
		return value
	}
	if value, ok := s.global[key]; ok && value != "" {
		return value
	}
	if value := os.Getenv(key); value != "" {
		return value
	}
	return Keys[key]
}

func (s sources) getBool(key string) (bool, error) {
	v := s.get(key)
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

// Load reads configuration for the project in dir. See sources for precedence.
func Load(dir string) (*Config, error) {
	src := readSources(dir)

	manage, err := src.getBool("COCKPIT_MANAGE_CONTAINER")
	if err != nil {
		return nil, err
	}
	syncName, err := src.getBool("COCKPIT_SYNC_NAME")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Backend:         strings.ToLower(src.get("COCKPIT_BACKEND")),
		CockpitID:       src.get("COCKPIT_ID"),
		CockpitName:     src.get("COCKPIT_NAME"),
		SQLitePath:      src.get("COCKPIT_SQLITE_PATH"),
		PostgresDSN:     src.get("COCKPIT_POSTGRES_DSN"),
		ManageContainer: manage,
		LogLevel:        strings.ToLower(src.get("COCKPIT_LOG_LEVEL")),
		StatusRanking:   src.get("COCKPIT_STATUS_RANKING"),
		SyncName:        syncName,
		Neo4jURI:        src.get("NEO4J_URI"),
		Neo4jUsername:   src.get("NEO4J_USERNAME"),
		Neo4jPassword:   src.get("NEO4J_PASSWORD"),
		Neo4jDatabase:   src.get("NEO4J_DATABASE"),
		Neo4jImage:      src.get("NEO4J_IMAGE"),
		ContainerName:   src.get("NEO4J_CONTAINER_NAME"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable for the selected backend.
func (c *Config) Validate() error {
	var missing []string
	if c.CockpitID == "" {
		missing = append(missing, "COCKPIT_ID")
	}

	switch c.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			missing = append(missing, "COCKPIT_SQLITE_PATH")
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			missing = append(missing, "COCKPIT_POSTGRES_DSN")
		}
	case BackendNeo4j:
		if c.Neo4jURI == "" {
			missing = append(missing, "NEO4J_URI")
		}
		if c.Neo4jUsername == "" {
			missing = append(missing, "NEO4J_USERNAME")
		}
		if c.Neo4jPassword == "" {
			missing = append(missing, "NEO4J_PASSWORD")
		}
		if c.Neo4jDatabase == "" {
			missing = append(missing, "NEO4J_DATABASE")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s, %s or %s)", c.Backend, BackendNeo4j, BackendSQLite, BackendPostgres, BackendMemory)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration fields: %s", strings.Join(missing, ", "))
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("COCKPIT_STATUS_RANKING: %w", err)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("COCKPIT_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// Policy returns the severity policy described by StatusRanking.
func (c *Config) Policy() (status.Policy, error) {
	return status.ParsePolicy(c.StatusRanking)
}

// GetConfigPath returns the full path to the .env file in the given directory.
func GetConfigPath(dir string) string {
	return filepath.Join(dir, ".env")
}

// Set updates or creates a configuration value in the .env file.
func Set(dir, key, value string) error {
	return writeKey(GetConfigPath(dir), key, value)
}

// Get retrieves a configuration value from the .env file.
func Get(dir, key string) (string, error) {
	envMap, err := godotenv.Read(GetConfigPath(dir))
	if err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}

	value, ok := envMap[key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in configuration", key)
	}
	return value, nil
}

// Entry is one resolved configuration key.
type Entry struct {
	Key   string
	Value string
}

// List resolves every known key for dir, sorted by key. Secrets are masked.
func List(dir string) []Entry {
	src := readSources(dir)
	entries := make([]Entry, 0, len(Keys))
	for key := range Keys {
		value := src.get(key)
		if (key == "NEO4J_PASSWORD" || key == "COCKPIT_POSTGRES_DSN") && value != "" {
			value = "********"
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// IsKnownKey reports whether key is a configuration key.
func IsKnownKey(key string) bool {
	_, ok := Keys[key]
	return ok
}

func writeKey(path, key, value string) error {
	envMap, err := godotenv.Read(path)
	if err != nil {
		envMap = make(map[string]string)
	}
	envMap[key] = value
	return godotenv.Write(envMap, path)
}
