package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // TEAMBOARD_DATABASE_URL (optional, empty = in-memory store)
	HTTPAddr    string // TEAMBOARD_HTTP_ADDR (default ":8080")
	NATSURL     string // TEAMBOARD_NATS_URL (optional, empty = no events)
	AuthToken   string // TEAMBOARD_AUTH_TOKEN (optional, empty = auth disabled)

	// Snapshot settings
	SnapshotInterval   time.Duration // TEAMBOARD_SNAPSHOT_INTERVAL (default 3m; 0 = disabled)
	SnapshotFile       string        // TEAMBOARD_SNAPSHOT_FILE (enables file destination when set)
	SnapshotS3Bucket   string        // TEAMBOARD_SNAPSHOT_S3_BUCKET (enables S3 when set)
	SnapshotS3Endpoint string        // TEAMBOARD_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
	SnapshotS3Region   string        // TEAMBOARD_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Key      string        // TEAMBOARD_SNAPSHOT_S3_KEY (default "teamboard/board.json")
	SnapshotGitRepo    string        // TEAMBOARD_SNAPSHOT_GIT_REPO (enables git when set; path to clone)
	SnapshotGitFile    string        // TEAMBOARD_SNAPSHOT_GIT_FILE (default "board.json")
	SnapshotGitBranch  string        // TEAMBOARD_SNAPSHOT_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:        os.Getenv("TEAMBOARD_DATABASE_URL"),
		HTTPAddr:           envOrDefault("TEAMBOARD_HTTP_ADDR", ":8080"),
		NATSURL:            os.Getenv("TEAMBOARD_NATS_URL"),
		AuthToken:          os.Getenv("TEAMBOARD_AUTH_TOKEN"),
		SnapshotFile:       os.Getenv("TEAMBOARD_SNAPSHOT_FILE"),
		SnapshotS3Bucket:   os.Getenv("TEAMBOARD_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Endpoint: os.Getenv("TEAMBOARD_SNAPSHOT_S3_ENDPOINT"),
		SnapshotS3Region:   envOrDefault("TEAMBOARD_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Key:      envOrDefault("TEAMBOARD_SNAPSHOT_S3_KEY", "teamboard/board.json"),
		SnapshotGitRepo:    os.Getenv("TEAMBOARD_SNAPSHOT_GIT_REPO"),
		SnapshotGitFile:    envOrDefault("TEAMBOARD_SNAPSHOT_GIT_FILE", "board.json"),
		SnapshotGitBranch:  envOrDefault("TEAMBOARD_SNAPSHOT_GIT_BRANCH", "main"),
	}

	intervalStr := envOrDefault("TEAMBOARD_SNAPSHOT_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("TEAMBOARD_SNAPSHOT_INTERVAL: %w", err)
		}
		c.SnapshotInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
