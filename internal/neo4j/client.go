package neo4j

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// RetryOptions configures the connection retry behavior
type RetryOptions struct {
	// MaxAttempts is the maximum number of connection attempts (default: 30)
	MaxAttempts int
	// InitialDelay is the delay before the first retry (default: 1s)
	InitialDelay time.Duration
	// MaxDelay is the maximum delay between retries (default: 10s)
	MaxDelay time.Duration
}

// DefaultRetryOptions returns defaults suited to waiting on a fresh container
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:  30,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
	}
}

// Client wraps the Neo4j driver with the database to use
type Client struct {
	driver neo4j.DriverWithContext
	db     string
}

// Config holds Neo4j connection configuration
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// ConfigFromEnv creates a Config from environment variables
func ConfigFromEnv() Config {
	return Config{
		URI:      getEnvOrDefault("NEO4J_URI", "bolt://localhost:7687"),
		Username: getEnvOrDefault("NEO4J_USERNAME", "neo4j"),
		Password: getEnvOrDefault("NEO4J_PASSWORD", "password"),
		Database: getEnvOrDefault("NEO4J_DATABASE", "neo4j"),
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// NewClient connects to Neo4j and makes sure the cockpit indexes exist
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	client := &Client{
		driver: driver,
		db:     cfg.Database,
	}

	if err := client.initSchema(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return client, nil
}

// NewClientWithRetry keeps calling NewClient with exponential backoff until it
// succeeds, the attempts run out or ctx is done. A nil opts uses the defaults.
func NewClientWithRetry(ctx context.Context, cfg Config, opts *RetryOptions) (*Client, error) {
	if opts == nil {
		defaultOpts := DefaultRetryOptions()
		opts = &defaultOpts
	}

	var client *Client
	err := retryWithBackoff(ctx, *opts, func() error {
		var err error
		client, err = NewClient(ctx, cfg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// calculateBackoff returns the delay after the given 1-based attempt
func calculateBackoff(attempt int, initialDelay, maxDelay time.Duration) time.Duration {
	delay := initialDelay * time.Duration(1<<(attempt-1))
	if delay > maxDelay || delay <= 0 {
		delay = maxDelay
	}
	return delay
}

func retryWithBackoff(ctx context.Context, opts RetryOptions, fn func() error) error {
	if opts.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", opts.MaxAttempts)
	}
	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == opts.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(calculateBackoff(attempt, opts.InitialDelay, opts.MaxDelay)):
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", opts.MaxAttempts, lastErr)
}

// Close closes the Neo4j driver
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// Session returns a new Neo4j session
func (c *Client) Session(ctx context.Context) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.db,
	})
}

// schemaQueries lists the index statements for every level of the cockpit graph.
func schemaQueries() []string {
	queries := []string{
		`CREATE INDEX cockpit_id IF NOT EXISTS FOR (c:Cockpit) ON (c.id)`,
	}
	for _, l := range levels {
		queries = append(queries, fmt.Sprintf(
			`CREATE INDEX %s_scope IF NOT EXISTS FOR (n:%s) ON (n.cockpitId, n.id)`,
			indexName(l.label), l.label))
	}
	return append(queries,
		`CREATE FULLTEXT INDEX element_name IF NOT EXISTS FOR (n:Element|SubElement) ON EACH [n.name]`)
}

// initSchema creates the lookup indexes used by the cockpit repository
func (c *Client) initSchema(ctx context.Context) error {
	session := c.Session(ctx)
	defer session.Close(ctx)

	for _, query := range schemaQueries() {
		_, err := session.Run(ctx, query, nil)
		if err != nil {
			return fmt.Errorf("failed to run schema query %q: %w", query, err)
		}
	}

	return nil
}
