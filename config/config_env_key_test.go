package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"persistence": map[string]any{
			"storageKey": "tycoon.state.v3",
			"saveDir":    "saves",
		},
		"game": map[string]any{
			"maxEnergy": 5,
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "PERSISTENCE_STORAGEKEY", want: "persistence.storageKey"},
		{envKey: "PERSISTENCE_SAVEDIR", want: "persistence.saveDir"},
		{envKey: "GAME_MAXENERGY", want: "game.maxEnergy"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Game.MaxEnergy != defaultMaxEnergy {
		t.Fatalf("MaxEnergy = %d, want %d", cfg.Game.MaxEnergy, defaultMaxEnergy)
	}
	if cfg.Game.EnergyRefillInterval != defaultEnergyRefillInterval {
		t.Fatalf("EnergyRefillInterval = %v, want %v", cfg.Game.EnergyRefillInterval, defaultEnergyRefillInterval)
	}
	if cfg.Persistence.StorageKey != defaultStorageKey {
		t.Fatalf("StorageKey = %q, want %q", cfg.Persistence.StorageKey, defaultStorageKey)
	}
	if cfg.Auth.MaxAccounts != defaultMaxAccounts {
		t.Fatalf("MaxAccounts = %d, want %d", cfg.Auth.MaxAccounts, defaultMaxAccounts)
	}
}
