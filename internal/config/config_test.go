// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OutputsDir != "./outputs" {
		t.Errorf("OutputsDir = %q, want %q", cfg.OutputsDir, "./outputs")
	}
	if cfg.FilePrefix != "output" {
		t.Errorf("FilePrefix = %q, want %q", cfg.FilePrefix, "output")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.TopUsers != 5 {
		t.Errorf("TopUsers = %d, want 5", cfg.TopUsers)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "GENSTATS_OUTPUTS_DIR", "/srv/render/outputs")
	setEnv(t, "GENSTATS_FILE_PREFIX", "render")
	setEnv(t, "GENSTATS_SERVER_HOST", "0.0.0.0")
	setEnv(t, "GENSTATS_SERVER_PORT", "3000")
	setEnv(t, "GENSTATS_ENV", "production")
	setEnv(t, "GENSTATS_LOG_LEVEL", "debug")
	setEnv(t, "GENSTATS_TOP_USERS", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OutputsDir != "/srv/render/outputs" {
		t.Errorf("OutputsDir = %q, want %q", cfg.OutputsDir, "/srv/render/outputs")
	}
	if cfg.FilePrefix != "render" {
		t.Errorf("FilePrefix = %q, want %q", cfg.FilePrefix, "render")
	}
	if cfg.ServerHost != "0.0.0.0" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "0.0.0.0")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want %q", cfg.Env, "production")
	}
	if cfg.TopUsers != 10 {
		t.Errorf("TopUsers = %d, want 10", cfg.TopUsers)
	}
}

func TestLoad_InvalidTopUsers(t *testing.T) {
	os.Clearenv()
	setEnv(t, "GENSTATS_TOP_USERS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail with GENSTATS_TOP_USERS=0")
	}
}

func TestLoad_EmptyPrefix(t *testing.T) {
	os.Clearenv()
	setEnv(t, "GENSTATS_FILE_PREFIX", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail with an empty file prefix")
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero rps", "GENSTATS_RATE_LIMIT_RPS", "0"},
		{"negative rps", "GENSTATS_RATE_LIMIT_RPS", "-1"},
		{"zero burst", "GENSTATS_RATE_LIMIT_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("Load() should fail with %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 8080, "localhost:8080"},
		{"0.0.0.0", 3000, "0.0.0.0:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := Config{ServerHost: tt.host, ServerPort: tt.port}
			if got := cfg.ServerAddr(); got != tt.want {
				t.Errorf("ServerAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}
