package config

import (
	"testing"
	"time"
)

// snapshotEnvVars lists all snapshot-related env vars that must be cleared between tests.
var snapshotEnvVars = []string{
	"TEAMBOARD_SNAPSHOT_INTERVAL", "TEAMBOARD_SNAPSHOT_FILE",
	"TEAMBOARD_SNAPSHOT_S3_BUCKET", "TEAMBOARD_SNAPSHOT_S3_ENDPOINT",
	"TEAMBOARD_SNAPSHOT_S3_REGION", "TEAMBOARD_SNAPSHOT_S3_KEY",
	"TEAMBOARD_SNAPSHOT_GIT_REPO", "TEAMBOARD_SNAPSHOT_GIT_FILE",
	"TEAMBOARD_SNAPSHOT_GIT_BRANCH",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TEAMBOARD_DATABASE_URL", "TEAMBOARD_HTTP_ADDR", "TEAMBOARD_NATS_URL", "TEAMBOARD_AUTH_TOKEN"} {
		t.Setenv(key, "")
	}
	for _, key := range snapshotEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name         string
		env          map[string]string
		wantHTTPAddr string
		wantNATSURL  string
	}{
		{
			name:         "Defaults",
			env:          map[string]string{},
			wantHTTPAddr: ":8080",
		},
		{
			name: "CustomAddresses",
			env: map[string]string{
				"TEAMBOARD_DATABASE_URL": "postgres://db:5432/teamboard",
				"TEAMBOARD_HTTP_ADDR":    ":3000",
				"TEAMBOARD_NATS_URL":     "nats://localhost:4222",
			},
			wantHTTPAddr: ":3000",
			wantNATSURL:  "nats://localhost:4222",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DatabaseURL != tc.env["TEAMBOARD_DATABASE_URL"] {
				t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, tc.env["TEAMBOARD_DATABASE_URL"])
			}
			if cfg.HTTPAddr != tc.wantHTTPAddr {
				t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, tc.wantHTTPAddr)
			}
			if cfg.NATSURL != tc.wantNATSURL {
				t.Errorf("NATSURL = %q, want %q", cfg.NATSURL, tc.wantNATSURL)
			}
		})
	}
}

func TestLoadNoDatabaseURL(t *testing.T) {
	// The database is optional; an empty URL selects the in-memory store.
	clearAllEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
}

func TestLoadSnapshotDefaults(t *testing.T) {
	clearAllEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SnapshotInterval != 3*time.Minute {
		t.Errorf("SnapshotInterval = %v, want 3m", cfg.SnapshotInterval)
	}
	if cfg.SnapshotS3Region != "us-east-1" {
		t.Errorf("SnapshotS3Region = %q, want %q", cfg.SnapshotS3Region, "us-east-1")
	}
	if cfg.SnapshotS3Key != "teamboard/board.json" {
		t.Errorf("SnapshotS3Key = %q, want %q", cfg.SnapshotS3Key, "teamboard/board.json")
	}
	if cfg.SnapshotGitFile != "board.json" {
		t.Errorf("SnapshotGitFile = %q, want %q", cfg.SnapshotGitFile, "board.json")
	}
	if cfg.SnapshotGitBranch != "main" {
		t.Errorf("SnapshotGitBranch = %q, want %q", cfg.SnapshotGitBranch, "main")
	}
}

func TestLoadSnapshotCustom(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("TEAMBOARD_SNAPSHOT_INTERVAL", "10m")
	t.Setenv("TEAMBOARD_SNAPSHOT_FILE", "/var/lib/teamboard/board.json")
	t.Setenv("TEAMBOARD_SNAPSHOT_S3_BUCKET", "my-bucket")
	t.Setenv("TEAMBOARD_SNAPSHOT_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("TEAMBOARD_SNAPSHOT_S3_REGION", "eu-west-1")
	t.Setenv("TEAMBOARD_SNAPSHOT_S3_KEY", "custom/key.json")
	t.Setenv("TEAMBOARD_SNAPSHOT_GIT_REPO", "/tmp/repo")
	t.Setenv("TEAMBOARD_SNAPSHOT_GIT_FILE", "custom.json")
	t.Setenv("TEAMBOARD_SNAPSHOT_GIT_BRANCH", "backup")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SnapshotInterval != 10*time.Minute {
		t.Errorf("SnapshotInterval = %v, want 10m", cfg.SnapshotInterval)
	}
	if cfg.SnapshotFile != "/var/lib/teamboard/board.json" {
		t.Errorf("SnapshotFile = %q", cfg.SnapshotFile)
	}
	if cfg.SnapshotS3Bucket != "my-bucket" {
		t.Errorf("SnapshotS3Bucket = %q", cfg.SnapshotS3Bucket)
	}
	if cfg.SnapshotS3Endpoint != "http://minio:9000" {
		t.Errorf("SnapshotS3Endpoint = %q", cfg.SnapshotS3Endpoint)
	}
	if cfg.SnapshotS3Region != "eu-west-1" {
		t.Errorf("SnapshotS3Region = %q", cfg.SnapshotS3Region)
	}
	if cfg.SnapshotS3Key != "custom/key.json" {
		t.Errorf("SnapshotS3Key = %q", cfg.SnapshotS3Key)
	}
	if cfg.SnapshotGitRepo != "/tmp/repo" {
		t.Errorf("SnapshotGitRepo = %q", cfg.SnapshotGitRepo)
	}
	if cfg.SnapshotGitFile != "custom.json" {
		t.Errorf("SnapshotGitFile = %q", cfg.SnapshotGitFile)
	}
	if cfg.SnapshotGitBranch != "backup" {
		t.Errorf("SnapshotGitBranch = %q", cfg.SnapshotGitBranch)
	}
}

func TestLoadSnapshotInvalidInterval(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("TEAMBOARD_SNAPSHOT_INTERVAL", "not-a-duration")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid TEAMBOARD_SNAPSHOT_INTERVAL")
	}
}

func TestLoadSnapshotDisabled(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("TEAMBOARD_SNAPSHOT_INTERVAL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SnapshotInterval != 0 {
		t.Errorf("SnapshotInterval = %v, want 0 (disabled)", cfg.SnapshotInterval)
	}
}

func TestEnvOrDefault(t *testing.T) {
	for _, tc := range []struct {
		name     string
		key      string
		envVal   string
		fallback string
		want     string
	}{
		{"EmptyUsesDefault", "TEST_ENVDEFAULT_EMPTY", "", "default-val", "default-val"},
		{"SetUsesEnv", "TEST_ENVDEFAULT_SET", "custom", "default-val", "custom"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envVal)
			got := envOrDefault(tc.key, tc.fallback)
			if got != tc.want {
				t.Errorf("envOrDefault(%q, %q) = %q, want %q", tc.key, tc.fallback, got, tc.want)
			}
		})
	}
}
