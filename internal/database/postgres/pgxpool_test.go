package postgres

import (
	"testing"
	"time"

	"skillsync/internal/config"
)

func TestPoolConfig_AppliesTuning(t *testing.T) {
	cfg := config.DatabaseConfig{
		DBHost:              "localhost",
		DBPort:              "5432",
		DBName:              "skillsync",
		DBUser:              "app",
		DBPassword:          "s3cret with space",
		DBSSLMode:           "disable",
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        12,
		PoolMinConns:        2,
		PoolMaxConnLifetime: 10 * time.Minute,
	}

	pcfg, err := PoolConfig(cfg, "skillsync-api")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pcfg.MaxConns != 12 || pcfg.MinConns != 2 {
		t.Fatalf("unexpected pool sizes: max=%d min=%d", pcfg.MaxConns, pcfg.MinConns)
	}
	if pcfg.MaxConnLifetime != 10*time.Minute {
		t.Fatalf("unexpected lifetime: %s", pcfg.MaxConnLifetime)
	}
	if pcfg.ConnConfig.ConnectTimeout != 3*time.Second {
		t.Fatalf("unexpected connect timeout: %s", pcfg.ConnConfig.ConnectTimeout)
	}
	if pcfg.ConnConfig.Password != "s3cret with space" {
		t.Fatalf("password not preserved: %q", pcfg.ConnConfig.Password)
	}
	if pcfg.ConnConfig.RuntimeParams["application_name"] != "skillsync-api" {
		t.Fatalf("application_name not set")
	}
}

func TestPoolConfig_RejectsMinAboveMax(t *testing.T) {
	cfg := config.DatabaseConfig{
		DBHost:       "localhost",
		DBPort:       "5432",
		DBName:       "skillsync",
		DBUser:       "app",
		DBSSLMode:    "disable",
		PoolMaxConns: 2,
		PoolMinConns: 5,
	}
	if _, err := PoolConfig(cfg, ""); err == nil {
		t.Fatalf("expected error")
	}
}
