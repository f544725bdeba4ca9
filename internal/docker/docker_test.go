package docker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fitz/cockpit/internal/config"
)

// fakeDocker answers docker commands from in-memory state.
type fakeDocker struct {
	unavailable bool
	exists      bool
	running     bool
	logs        string
	calls       []string
}

func (f *fakeDocker) run(_ context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, strings.Join(args, " "))
	switch args[0] {
	case "version":
		if f.unavailable {
			return nil, errors.New("not installed")
		}
	case "ps":
		all := args[1] == "-a"
		name := strings.TrimSuffix(strings.TrimPrefix(args[len(args)-3], "name=^"), "$")
		if f.exists && (all || f.running) {
			return []byte(name + "\n"), nil
		}
	case "run":
		f.exists, f.running = true, true
	case "start":
		f.running = true
	case "stop":
		f.running = false
	case "logs":
		return []byte(f.logs), nil
	}
	return nil, nil
}

func newFakeManager(f *fakeDocker) *Manager {
	m := NewManager(f.run, nil)
	m.settle = 0
	m.poll = time.Millisecond
	return m
}

func testContainer() *ContainerConfig {
	return &ContainerConfig{
		Name:     "test-cockpit-neo4j",
		Image:    "neo4j:5.25-community",
		Username: "neo4j",
		Password: "testpass",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ContainerConfig)
		wantErr bool
	}{
		{"valid config", func(*ContainerConfig) {}, false},
		{"missing name", func(c *ContainerConfig) { c.Name = "" }, true},
		{"missing image", func(c *ContainerConfig) { c.Image = "" }, true},
		{"missing password", func(c *ContainerConfig) { c.Password = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContainer()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	c := FromConfig(&config.Config{
		ContainerName: "cockpit-neo4j",
		Neo4jImage:    "neo4j:5",
		Neo4jUsername: "neo4j",
		Neo4jPassword: "pw",
	})
	if c.Name != "cockpit-neo4j" || c.Image != "neo4j:5" || c.Password != "pw" {
		t.Errorf("FromConfig: got %+v", c)
	}
	if c.volume() != "cockpit-neo4j-data" {
		t.Errorf("volume: got %q", c.volume())
	}
}

func TestRunArgs(t *testing.T) {
	args := strings.Join(testContainer().runArgs(), " ")
	for _, want := range []string{"--name test-cockpit-neo4j", "-v test-cockpit-neo4j-data:/data", "NEO4J_AUTH=neo4j/testpass", "neo4j:5.25-community"} {
		if !strings.Contains(args, want) {
			t.Errorf("run args %q missing %q", args, want)
		}
	}
}

func TestEnsure(t *testing.T) {
	ctx := context.Background()
	f := &fakeDocker{}
	m := newFakeManager(f)
	c := testContainer()

	created, err := m.Ensure(ctx, c)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if !created {
		t.Error("Ensure() should report creation of a new container")
	}

	created, err = m.Ensure(ctx, c)
	if err != nil {
		t.Fatalf("Ensure() error on second call = %v", err)
	}
	if created {
		t.Error("Ensure() should return false when the container already runs")
	}

	if err := m.Stop(ctx, c.Name); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	created, err = m.Ensure(ctx, c)
	if err != nil {
		t.Fatalf("Ensure() error on third call = %v", err)
	}
	if created {
		t.Error("Ensure() should return false when starting an existing container")
	}
	if running, _ := m.Running(ctx, c.Name); !running {
		t.Error("container should be running after Ensure()")
	}
	if last := f.calls[len(f.calls)-1]; last != "start test-cockpit-neo4j" {
		t.Errorf("last call: got %q, want start", last)
	}
}

func TestEnsure_DockerUnavailable(t *testing.T) {
	m := newFakeManager(&fakeDocker{unavailable: true})
	if _, err := m.Ensure(context.Background(), testContainer()); err == nil {
		t.Error("Ensure() should fail without docker")
	}
}

func TestWait(t *testing.T) {
	ctx := context.Background()
	f := &fakeDocker{exists: true, running: true, logs: "Remote interface available\nStarted.\n"}
	m := newFakeManager(f)

	if err := m.Wait(ctx, "test-cockpit-neo4j", time.Second); err != nil {
		t.Errorf("Wait() error = %v", err)
	}

	f.logs = "starting"
	if err := m.Wait(ctx, "test-cockpit-neo4j", 20*time.Millisecond); err == nil {
		t.Error("Wait() should time out")
	}

	f.running = false
	if err := m.Wait(ctx, "test-cockpit-neo4j", time.Second); err == nil {
		t.Error("Wait() should fail for a stopped container")
	}
}

func TestCLI_Integration(t *testing.T) {
	m := NewManager(nil, nil)
	if !m.Available(context.Background()) {
		t.Skip("Docker not available")
	}
	exists, err := m.Exists(context.Background(), "this-container-should-not-exist-12345")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() should be false for a missing container")
	}
}
