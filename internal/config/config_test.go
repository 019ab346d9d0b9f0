package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.Preview.Addr != ":3000" {
		t.Errorf("expected default addr :3000, got %s", cfg.Preview.Addr)
	}
	if cfg.Preview.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Preview.ReadTimeout)
	}
	if cfg.Preview.IdleTimeout != 60*time.Second {
		t.Errorf("unexpected idle timeout: %s", cfg.Preview.IdleTimeout)
	}
	if cfg.Content.Dir != "" {
		t.Errorf("expected embedded content, got dir %s", cfg.Content.Dir)
	}
	if cfg.Content.FallbackLang != "en" {
		t.Errorf("expected fallback en, got %s", cfg.Content.FallbackLang)
	}
	if !reflect.DeepEqual(cfg.Content.Languages, []string{"en", "ja"}) {
		t.Errorf("unexpected languages %v", cfg.Content.Languages)
	}
	if cfg.Content.CacheTTL != 5*time.Minute {
		t.Errorf("unexpected cache ttl %s", cfg.Content.CacheTTL)
	}
	if cfg.Site.TitleTemplate != "" {
		t.Errorf("expected no title template, got %q", cfg.Site.TitleTemplate)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	env := map[string]string{
		"HEADMETA_LOG_LEVEL":             "DEBUG",
		"HEADMETA_PREVIEW_ADDR":          "127.0.0.1:4000",
		"HEADMETA_PREVIEW_WRITE_TIMEOUT": "20s",
		"HEADMETA_CONTENT_DIR":           dir,
		"HEADMETA_CONTENT_FALLBACK_LANG": "ja",
		"HEADMETA_CONTENT_LANGUAGES":     "ja, EN ,",
		"HEADMETA_CONTENT_CACHE_TTL":     "0s",
		"HEADMETA_SITE_TITLE_TEMPLATE":   "%s | Hanko Field",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
	if cfg.Preview.Addr != "127.0.0.1:4000" {
		t.Errorf("unexpected addr %s", cfg.Preview.Addr)
	}
	if cfg.Preview.WriteTimeout != 20*time.Second {
		t.Errorf("unexpected write timeout %s", cfg.Preview.WriteTimeout)
	}
	if cfg.Content.Dir != dir {
		t.Errorf("unexpected content dir %s", cfg.Content.Dir)
	}
	if !reflect.DeepEqual(cfg.Content.Languages, []string{"ja", "en"}) {
		t.Errorf("unexpected languages %v", cfg.Content.Languages)
	}
	if cfg.Content.CacheTTL != 0 {
		t.Errorf("expected caching disabled, got %s", cfg.Content.CacheTTL)
	}
	if cfg.Site.TitleTemplate != "%s | Hanko Field" {
		t.Errorf("unexpected title template %q", cfg.Site.TitleTemplate)
	}
}

func TestLoadDotEnvFallback(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "# local overrides\nexport HEADMETA_PREVIEW_ADDR=':7070'\nHEADMETA_LOG_LEVEL=warn\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dotenv file: %v", err)
	}

	cfg, err := Load(WithEnvFile(envPath), WithoutSystemEnv(), WithEnvMap(map[string]string{"HEADMETA_LOG_LEVEL": "error"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Preview.Addr != ":7070" {
		t.Errorf("expected addr from dotenv, got %s", cfg.Preview.Addr)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected env map to win over dotenv, got %s", cfg.LogLevel)
	}
}

func TestLoadSystemEnv(t *testing.T) {
	t.Setenv("HEADMETA_PREVIEW_ADDR", ":5050")

	cfg, err := Load(WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Preview.Addr != ":5050" {
		t.Errorf("expected addr from environment, got %s", cfg.Preview.Addr)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	env := map[string]string{
		"HEADMETA_LOG_LEVEL":             "chatty",
		"HEADMETA_PREVIEW_READ_TIMEOUT":  "soon",
		"HEADMETA_PREVIEW_IDLE_TIMEOUT":  "-1s",
		"HEADMETA_CONTENT_DIR":           filepath.Join(t.TempDir(), "missing"),
		"HEADMETA_CONTENT_FALLBACK_LANG": "not a language",
		"HEADMETA_CONTENT_LANGUAGES":     "en,??",
		"HEADMETA_CONTENT_CACHE_TTL":     "-5m",
	}

	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	want := []string{
		"Preview.ReadTimeout",
		"LogLevel",
		"Preview.IdleTimeout",
		"Content.Dir",
		"Content.FallbackLang",
		"Content.Languages[1]",
		"Content.CacheTTL",
	}
	if !reflect.DeepEqual(verr.Fields(), want) {
		t.Errorf("unexpected fields %v", verr.Fields())
	}
}
