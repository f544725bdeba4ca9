// Package docker keeps the Neo4j container behind the graph backend running,
// driving the Docker CLI.
package docker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/fitz/cockpit/internal/config"
)

// ContainerConfig holds the configuration for a Neo4j container.
type ContainerConfig struct {
	Name     string
	Image    string
	Username string
	Password string
	// Volume keeps /data across container re-creation. Defaults to <Name>-data.
	Volume string
}

// FromConfig derives the container settings from the application config.
func FromConfig(cfg *config.Config) *ContainerConfig {
	return &ContainerConfig{
		Name:     cfg.ContainerName,
		Image:    cfg.Neo4jImage,
		Username: cfg.Neo4jUsername,
		Password: cfg.Neo4jPassword,
	}
}

// Validate checks that all required fields are set.
func (c *ContainerConfig) Validate() error {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "Name")
	}
	if c.Image == "" {
		missing = append(missing, "Image")
	}
	if c.Username == "" {
		missing = append(missing, "Username")
	}
	if c.Password == "" {
		missing = append(missing, "Password")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *ContainerConfig) volume() string {
	if c.Volume != "" {
		return c.Volume
	}
	return c.Name + "-data"
}

// runArgs builds the arguments of `docker run` for c.
func (c *ContainerConfig) runArgs() []string {
	return []string{
		"run",
		"-d",
		"--name", c.Name,
		"-p", "7687:7687",
		"-p", "7474:7474",
		"-v", c.volume() + ":/data",
		"-e", fmt.Sprintf("NEO4J_AUTH=%s/%s", c.Username, c.Password),
		c.Image,
	}
}

// Runner executes one docker command and returns its stdout.
type Runner func(ctx context.Context, args ...string) ([]byte, error)

// CLI runs the docker binary.
func CLI(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "docker", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, fmt.Errorf("docker %s: %w (stderr: %s)", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// Manager drives container lifecycle through a Runner.
type Manager struct {
	run    Runner
	logger *slog.Logger
	// settle is how long to wait after creating or starting a container.
	settle time.Duration
	poll   time.Duration
}

// NewManager returns a Manager. A nil runner uses the docker CLI.
func NewManager(run Runner, logger *slog.Logger) *Manager {
	if run == nil {
		run = CLI
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{run: run, logger: logger, settle: 2 * time.Second, poll: time.Second}
}

// Available checks if Docker is installed and accessible.
func (m *Manager) Available(ctx context.Context) bool {
	_, err := m.run(ctx, "version")
	return err == nil
}

func (m *Manager) listNames(ctx context.Context, all bool, name string) (bool, error) {
	args := []string{"ps"}
	if all {
		args = append(args, "-a")
	}
	args = append(args, "--filter", fmt.Sprintf("name=^%s$", name), "--format", "{{.Names}}")
	out, err := m.run(ctx, args...)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) == name, nil
}

// Exists checks if a container with the given name exists.
func (m *Manager) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := m.listNames(ctx, true, name)
	if err != nil {
		return false, fmt.Errorf("failed to check container existence: %w", err)
	}
	return ok, nil
}

// Running checks if a container is currently running.
func (m *Manager) Running(ctx context.Context, name string) (bool, error) {
	ok, err := m.listNames(ctx, false, name)
	if err != nil {
		return false, fmt.Errorf("failed to check container status: %w", err)
	}
	return ok, nil
}

// Create creates and starts a new Neo4j container.
func (m *Manager) Create(ctx context.Context, c *ContainerConfig) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid container config: %w", err)
	}
	if _, err := m.run(ctx, c.runArgs()...); err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	return nil
}

// Start starts an existing container.
func (m *Manager) Start(ctx context.Context, name string) error {
	if _, err := m.run(ctx, "start", name); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}
	return nil
}

// Stop stops a running container.
func (m *Manager) Stop(ctx context.Context, name string) error {
	if _, err := m.run(ctx, "stop", name); err != nil {
		return fmt.Errorf("failed to stop container: %w", err)
	}
	return nil
}

// Ensure makes sure the container exists and runs. It reports whether the
// container had to be created.
func (m *Manager) Ensure(ctx context.Context, c *ContainerConfig) (created bool, err error) {
	if !m.Available(ctx) {
		return false, fmt.Errorf("docker is not available, install Docker and make sure it is running")
	}
	if err := c.Validate(); err != nil {
		return false, fmt.Errorf("invalid container config: %w", err)
	}

	exists, err := m.Exists(ctx, c.Name)
	if err != nil {
		return false, err
	}
	if !exists {
		m.logger.Info("creating neo4j container", "name", c.Name, "image", c.Image)
		if err := m.Create(ctx, c); err != nil {
			return false, err
		}
		return true, m.sleep(ctx, m.settle)
	}

	running, err := m.Running(ctx, c.Name)
	if err != nil {
		return false, err
	}
	if !running {
		m.logger.Info("starting neo4j container", "name", c.Name)
		if err := m.Start(ctx, c.Name); err != nil {
			return false, err
		}
		return false, m.sleep(ctx, m.settle)
	}
	return false, nil
}

// Wait polls the container logs until Neo4j reports it has started.
func (m *Manager) Wait(ctx context.Context, name string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		running, err := m.Running(ctx, name)
		if err != nil {
			return err
		}
		if !running {
			return fmt.Errorf("container %s is not running", name)
		}

		out, err := m.run(ctx, "logs", name)
		if err == nil && strings.Contains(string(out), "Started.") {
			return nil
		}

		if err := m.sleep(ctx, m.poll); err != nil {
			return fmt.Errorf("timeout waiting for container %s to be ready: %w", name, err)
		}
	}
}

func (m *Manager) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
