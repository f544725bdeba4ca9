package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetGlobalConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	expected := filepath.Join(home, ".cockpit")
	if dir := GetGlobalConfigDir(); dir != expected {
		t.Errorf("expected %s, got %s", expected, dir)
	}
}

func TestEnsureGlobalConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := EnsureGlobalConfigDir(); err != nil {
		t.Fatalf("failed to ensure global config dir: %v", err)
	}

	expectedDir := filepath.Join(home, ".cockpit")
	if _, err := os.Stat(expectedDir); os.IsNotExist(err) {
		t.Errorf("global config directory was not created at %s", expectedDir)
	}
}

func TestSetGetGlobalConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := SetGlobalConfig("COCKPIT_BACKEND", "memory"); err != nil {
		t.Fatalf("SetGlobalConfig: %v", err)
	}
	value, err := GetGlobalConfig("COCKPIT_BACKEND")
	if err != nil {
		t.Fatalf("GetGlobalConfig: %v", err)
	}
	if value != "memory" {
		t.Errorf("expected memory, got %s", value)
	}

	if _, err := GetGlobalConfig("MISSING"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestGetGlobalConfig_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := GetGlobalConfig("COCKPIT_BACKEND"); err == nil {
		t.Error("expected error when the global config file does not exist")
	}
}
