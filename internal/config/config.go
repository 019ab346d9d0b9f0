package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
)

const (
	envPrefix           = "HEADMETA_"
	defaultEnvFile      = ".env"
	defaultLogLevel     = "info"
	defaultPreviewAddr  = ":3000"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultFallbackLang = "en"
	defaultCacheTTL     = 5 * time.Minute
)

var defaultLanguages = []string{"en", "ja"}

// Config captures all runtime configuration organised by concern.
type Config struct {
	LogLevel string
	Preview  PreviewConfig
	Content  ContentConfig
	Site     SiteConfig
}

// PreviewConfig controls the preview HTTP server.
type PreviewConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ContentConfig locates page documents. An empty Dir selects the embedded demo pages.
type ContentConfig struct {
	Dir          string
	FallbackLang string
	Languages    []string
	CacheTTL     time.Duration
}

// SiteConfig holds site-wide metadata defaults.
type SiteConfig struct {
	TitleTemplate string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides and environment variables.
// Keys are prefixed with HEADMETA_.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	var invalid []string
	lookup := func(key string) (string, bool) {
		key = envPrefix + key
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}
	duration := func(field, key string, fallback time.Duration) time.Duration {
		d, ok := durationWithDefault(lookup, key, fallback)
		if !ok {
			invalid = append(invalid, field)
		}
		return d
	}

	cfg := Config{
		LogLevel: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
		Preview: PreviewConfig{
			Addr:         stringWithDefault(lookup, "PREVIEW_ADDR", defaultPreviewAddr),
			ReadTimeout:  duration("Preview.ReadTimeout", "PREVIEW_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: duration("Preview.WriteTimeout", "PREVIEW_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  duration("Preview.IdleTimeout", "PREVIEW_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Content: ContentConfig{
			Dir:          stringWithDefault(lookup, "CONTENT_DIR", ""),
			FallbackLang: strings.ToLower(stringWithDefault(lookup, "CONTENT_FALLBACK_LANG", defaultFallbackLang)),
			Languages:    csvWithDefault(lookup, "CONTENT_LANGUAGES"),
			CacheTTL:     duration("Content.CacheTTL", "CONTENT_CACHE_TTL", defaultCacheTTL),
		},
		Site: SiteConfig{
			TitleTemplate: stringWithDefault(lookup, "SITE_TITLE_TEMPLATE", ""),
		},
	}

	if len(cfg.Content.Languages) == 0 {
		cfg.Content.Languages = append([]string(nil), defaultLanguages...)
	}

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	missing := append([]string(nil), invalid...)

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		missing = append(missing, "LogLevel")
	}
	if strings.TrimSpace(cfg.Preview.Addr) == "" {
		missing = append(missing, "Preview.Addr")
	}
	if cfg.Preview.ReadTimeout <= 0 {
		missing = append(missing, "Preview.ReadTimeout")
	}
	if cfg.Preview.WriteTimeout <= 0 {
		missing = append(missing, "Preview.WriteTimeout")
	}
	if cfg.Preview.IdleTimeout <= 0 {
		missing = append(missing, "Preview.IdleTimeout")
	}
	if cfg.Content.Dir != "" {
		if info, err := os.Stat(cfg.Content.Dir); err != nil || !info.IsDir() {
			missing = append(missing, "Content.Dir")
		}
	}
	if _, err := language.Parse(cfg.Content.FallbackLang); err != nil {
		missing = append(missing, "Content.FallbackLang")
	}
	for i, lang := range cfg.Content.Languages {
		if _, err := language.Parse(lang); err != nil {
			missing = append(missing, fmt.Sprintf("Content.Languages[%d]", i))
		}
	}
	if cfg.Content.CacheTTL < 0 {
		missing = append(missing, "Content.CacheTTL")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(parts[1]), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// durationWithDefault reports false when a value is present but unparsable.
func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) (time.Duration, bool) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, true
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback, false
	}
	return d, true
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
