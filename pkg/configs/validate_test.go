package configs

import (
	"errors"
	"testing"
)

func validConfig() *AppConfig {
	return &AppConfig{
		DB: DBConfig{
			Type:     SQLite,
			Port:     DefaultDatabasePort,
			Database: DefaultDatabaseName,
		},
		Auth: AuthConfig{
			SessionSecret:   "unit-test-secret",
			Issuer:          DefaultAuthIssuer,
			SessionTTLHours: DefaultSessionTTLHours,
		},
		Release: ReleaseConfig{
			Enabled:        true,
			Token:          "ghp_test",
			Repository:     "owner/repo",
			TimeoutSeconds: DefaultReleaseTimeout,
		},
		Server: ServerConfig{
			Port:         DefaultPort,
			Timeout:      DefaultTimeout,
			MaxUploadMiB: DefaultMaxUploadMiB,
		},
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidateRequiresSessionSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.SessionSecret = ""

	if err := cfg.Validate(); !errors.Is(err, ErrMissingSessionSecret) {
		t.Errorf("expected ErrMissingSessionSecret, got %v", err)
	}
}

func TestValidateRequiresReleaseCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Release.Token = ""

	if err := cfg.Validate(); !errors.Is(err, ErrMissingReleaseToken) {
		t.Errorf("expected ErrMissingReleaseToken, got %v", err)
	}

	cfg = validConfig()
	cfg.Release.Repository = ""

	if err := cfg.Validate(); !errors.Is(err, ErrMissingReleaseRepository) {
		t.Errorf("expected ErrMissingReleaseRepository, got %v", err)
	}
}

func TestValidateReleaseDisabledSkipsCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Release = ReleaseConfig{Enabled: false, TimeoutSeconds: DefaultReleaseTimeout}

	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled release storage must not require credentials, got %v", err)
	}
}
