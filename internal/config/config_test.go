package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv unsets every variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvLogLevel, EnvLogFormat, EnvListsDir, EnvSigningKey, EnvSigningPassphrase} {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.LogFormat != "console" {
		t.Errorf("LogFormat = %v, want console", cfg.LogFormat)
	}
	if cfg.ListsDir != "lists" {
		t.Errorf("ListsDir = %v, want lists", cfg.ListsDir)
	}
	if cfg.SigningKey != "" {
		t.Errorf("SigningKey = %v, want empty", cfg.SigningKey)
	}
}

func TestLoadFrom_EnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "SALESTAX_LOG_LEVEL=debug\nSALESTAX_LISTS_DIR=/srv/lists\nSALESTAX_SIGNING_KEY=/keys/till.asc\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	// the real environment wins over the file
	t.Setenv(EnvListsDir, "/override")

	cfg, err := LoadFrom(envFile)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.ListsDir != "/override" {
		t.Errorf("ListsDir = %v, want /override", cfg.ListsDir)
	}
	if cfg.SigningKey != "/keys/till.asc" {
		t.Errorf("SigningKey = %v, want /keys/till.asc", cfg.SigningKey)
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "level", key: EnvLogLevel, value: "loud", wantErr: "unknown log level"},
		{name: "format", key: EnvLogFormat, value: "xml", wantErr: "unknown log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadFrom("")
			if err == nil {
				t.Fatal("LoadFrom() should return error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFrom() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFrom_MalformedEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("SALESTAX_LOG_LEVEL='unterminated\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(envFile); err == nil {
		t.Error("LoadFrom() should fail for a malformed .env file")
	}
}
