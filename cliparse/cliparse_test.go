package cliparse

import "testing"

func TestParseFlags(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "")
	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "postgres://localhost/livepoll", "-ip-salt", "s3cret"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("Expected default type postgres, got %q", cfg.DatabaseType)
	}
}

func TestParseFlagsRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := ParseFlags([]string{"-ip-salt", "s3cret"}); err == nil {
		t.Error("Expected error without database URL")
	}
}

func TestParseFlagsRequiresSalt(t *testing.T) {
	t.Setenv("IP_HASH_SALT", "")
	if _, err := ParseFlags([]string{"-d", "postgres://localhost/livepoll"}); err == nil {
		t.Error("Expected error without IP_HASH_SALT")
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "file.db")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("IP_HASH_SALT", "s3cret")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 9000 || cfg.DatabaseURL != "file.db" || cfg.DatabaseType != "sqlite" {
		t.Errorf("Env fallback not applied: %+v", cfg)
	}
	if cfg.DriverName() != "sqlite" {
		t.Errorf("Expected sqlite driver, got %q", cfg.DriverName())
	}
}

func TestParseFlagsRejectsUnknownType(t *testing.T) {
	_, err := ParseFlags([]string{"-d", "x", "-t", "oracle", "-ip-salt", "s3cret"})
	if err == nil {
		t.Error("Expected error for unknown database type")
	}
}
