package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MOCK_MINTING", "")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "3001" {
		t.Fatalf("Port = %q, want 3001", cfg.Port)
	}
	if cfg.MockMinting {
		t.Fatal("MockMinting should default to false")
	}
	if cfg.HTTPWriteTimeout != 120*time.Second {
		t.Fatalf("HTTPWriteTimeout = %s, want 120s", cfg.HTTPWriteTimeout)
	}
	if cfg.StorageBaseURL != "https://api.nft.storage" {
		t.Fatalf("StorageBaseURL = %q", cfg.StorageBaseURL)
	}
}

func TestLoadConfigMockToggle(t *testing.T) {
	t.Setenv("MOCK_MINTING", "true")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if !cfg.MockMinting {
		t.Fatal("MOCK_MINTING=true should enable the mock pipeline")
	}
}

func TestLoadConfigInvalidIntKeepsFallback(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT_SECONDS", "soon")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.HTTPReadTimeout != 15*time.Second {
		t.Fatalf("HTTPReadTimeout = %s, want fallback 15s", cfg.HTTPReadTimeout)
	}
}

func TestLoadConfigDoesNotRequireChainCredentials(t *testing.T) {
	t.Setenv("POLYGON_RPC_URL", "")
	t.Setenv("PRIVATE_KEY", "")
	t.Setenv("CONTRACT_ADDRESS", "")
	if _, err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig should not require chain credentials: %v", err)
	}
}
