package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{"JWT_SECRET": "s"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Addr != ":8080" || cfg.DBPath != "./data/fairsplit.db" || cfg.DefaultCurrency != "INR" {
					t.Errorf("unexpected defaults: %+v", cfg)
				}
				if cfg.TokenTTL != 24*time.Hour {
					t.Errorf("TokenTTL = %v", cfg.TokenTTL)
				}
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"JWT_SECRET":       "s",
				"ADDR":             ":9000",
				"DB_PATH":          "/tmp/x.db",
				"TOKEN_TTL_HOURS":  "2",
				"DEFAULT_CURRENCY": "USD",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Addr != ":9000" || cfg.DBPath != "/tmp/x.db" || cfg.DefaultCurrency != "USD" || cfg.TokenTTL != 2*time.Hour {
					t.Errorf("unexpected config: %+v", cfg)
				}
			},
		},
		{
			name:    "missing secret",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name:    "bad ttl",
			env:     map[string]string{"JWT_SECRET": "s", "TOKEN_TTL_HOURS": "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"JWT_SECRET", "ADDR", "DB_PATH", "TOKEN_TTL_HOURS", "DEFAULT_CURRENCY", "STATIC_PATH"} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := FromEnv()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("FromEnv failed: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from-file\nADDR=:7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	// Unset variables come from the file; set ones win.
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADDR", ":6000")
	os.Unsetenv("JWT_SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JWTSecret != "from-file" {
		t.Errorf("JWTSecret = %q, want value from .env", cfg.JWTSecret)
	}
	if cfg.Addr != ":6000" {
		t.Errorf("Addr = %q, environment should win", cfg.Addr)
	}
}
