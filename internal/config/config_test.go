package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearOverrides blanks every recognized override so Load sees only the
// test's own inputs regardless of the invoking shell.
func clearOverrides(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		configPathEnv, databaseDSNEnv, congressKeyEnv,
		openAIKeyEnv, openAIModelEnv, smtpPasswordEnv, telegramBotEnv,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearOverrides(t)

	cfg := Load()

	if cfg.Congress.BaseURL != "https://api.congress.gov/v3" {
		t.Fatalf("unexpected congress base url: %s", cfg.Congress.BaseURL)
	}
	if cfg.Pipeline.BatchLimit != 2000 {
		t.Fatalf("unexpected batch limit: %d", cfg.Pipeline.BatchLimit)
	}
	if cfg.Pipeline.HouseSourceID != 57 || cfg.Pipeline.SenateSourceID != 56 {
		t.Fatalf("unexpected source ids: %d/%d", cfg.Pipeline.HouseSourceID, cfg.Pipeline.SenateSourceID)
	}
	if cfg.Scheduler.Interval != 24*time.Hour {
		t.Fatalf("unexpected scheduler interval: %s", cfg.Scheduler.Interval)
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
openai:
  model: gpt-4o
pipeline:
  batchLimit: 50
notifications:
  telegram:
    botToken: file-token
    chatId: 42
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	clearOverrides(t)
	t.Setenv(configPathEnv, path)
	t.Setenv(openAIModelEnv, "gpt-4.1")
	t.Setenv(databaseDSNEnv, "postgres://env@localhost/newsroom")

	cfg := Load()

	// Env beats file, file beats defaults.
	if cfg.OpenAI.Model != "gpt-4.1" {
		t.Fatalf("env override lost: %s", cfg.OpenAI.Model)
	}
	if cfg.Pipeline.BatchLimit != 50 {
		t.Fatalf("file value lost: %d", cfg.Pipeline.BatchLimit)
	}
	if cfg.Database.DSN != "postgres://env@localhost/newsroom" {
		t.Fatalf("dsn override lost: %s", cfg.Database.DSN)
	}
	if cfg.Notifications.Telegram.BotToken != "file-token" || cfg.Notifications.Telegram.ChatID != 42 {
		t.Fatalf("telegram config lost: %+v", cfg.Notifications.Telegram)
	}
	if cfg.Pipeline.Uname != "T70-BM-BillSum" {
		t.Fatalf("default wiped by merge: %s", cfg.Pipeline.Uname)
	}
}

func TestCongressKeyResolution(t *testing.T) {
	inline := CongressConfig{APIKey: "inline-key", APIKeyFile: "ignored"}
	if key, err := inline.Key(); err != nil || key != "inline-key" {
		t.Fatalf("inline key: %q, %v", key, err)
	}

	path := filepath.Join(t.TempDir(), "govkey.txt")
	if err := os.WriteFile(path, []byte("  file-key\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	fromFile := CongressConfig{APIKeyFile: path}
	if key, err := fromFile.Key(); err != nil || key != "file-key" {
		t.Fatalf("file key: %q, %v", key, err)
	}

	if _, err := (CongressConfig{}).Key(); err == nil {
		t.Fatal("expected error for missing key")
	}
}
