package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MinSendBuffer fits the connect greeting and the private join welcome,
// which are queued before the client reads anything.
const MinSendBuffer = 2

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat         string        `mapstructure:"log_format" yaml:"log_format"`

	// MaxMessageBytes caps a single inbound WebSocket frame.
	MaxMessageBytes int64 `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	// SendBuffer is the per-connection outbound queue length, at least
	// MinSendBuffer.
	SendBuffer     int      `mapstructure:"send_buffer" yaml:"send_buffer"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`

	WelcomeText string `mapstructure:"welcome_text" yaml:"welcome_text"`
	// PublicDir is served at / when set.
	PublicDir string `mapstructure:"public_dir" yaml:"public_dir"`

	BannedWords  []string `mapstructure:"banned_words" yaml:"banned_words"`
	AllowedWords []string `mapstructure:"allowed_words" yaml:"allowed_words"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		MaxMessageBytes:   32 << 10,
		SendBuffer:        64,
		WelcomeText:       "Welcome!",
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.MaxMessageBytes != 0 {
		c.MaxMessageBytes = other.MaxMessageBytes
	}
	if other.SendBuffer != 0 {
		c.SendBuffer = other.SendBuffer
	}
	if len(other.AllowedOrigins) > 0 {
		c.AllowedOrigins = other.AllowedOrigins
	}
	if other.WelcomeText != "" {
		c.WelcomeText = other.WelcomeText
	}
	if other.PublicDir != "" {
		c.PublicDir = other.PublicDir
	}
	if len(other.BannedWords) > 0 {
		c.BannedWords = other.BannedWords
	}
	if len(other.AllowedWords) > 0 {
		c.AllowedWords = other.AllowedWords
	}
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is empty"))
	}
	if c.MaxMessageBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_message_bytes must be positive, got %d", c.MaxMessageBytes))
	}
	if c.SendBuffer < MinSendBuffer {
		errs = append(errs, fmt.Errorf("send_buffer must be at least %d, got %d", MinSendBuffer, c.SendBuffer))
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
