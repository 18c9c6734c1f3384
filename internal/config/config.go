// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package config loads and validates the proxy's immutable runtime
// configuration: the URL encoding algorithm, the listen address, and the
// public host suffix that encoded subdomains live under.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/weirdproxy/subproxy/internal/codec"
)

const (
	envHost              = "PROXY_HOST"
	envPublicHost        = "PROXY_PUBLIC_HOST"
	envLogLevel          = "PROXY_LOG_LEVEL"
	envRequestTimeout    = "PROXY_REQUEST_TIMEOUT"
	envMaxBodyBytes      = "PROXY_MAX_BODY_BYTES"
	envServerReadTimeout = "PROXY_SERVER_READ_TIMEOUT"
	envGracefulShutdown  = "PROXY_GRACEFUL_SHUTDOWN"

	defaultHost              = "0.0.0.0:3069"
	defaultPublicHost        = "changeme.local"
	defaultLogLevel          = "info"
	defaultRequestTimeout    = 30 * time.Second
	defaultMaxBodyBytes      = 32 << 20 // 32MiB; spec §5 flags the source as unbounded and SHOULD be capped.
	defaultServerReadTimeout = 30 * time.Second
	defaultGracefulShutdown  = 10 * time.Second
)

// Config is the immutable, process-wide configuration shared across every
// handler (spec §3, §4.7). It is constructed once by Load at process start
// and never reloaded at runtime.
type Config struct {
	// Algorithm selects Base32 or Base32Xor and the alphabet both use.
	Algorithm codec.Algorithm
	// Host is the TCP listen address for the single shared listener.
	Host string
	// PublicHost is the DNS suffix every encoded subdomain lives under.
	// The control API is served at "api." + PublicHost.
	PublicHost string

	LogLevel string

	RequestTimeout    time.Duration
	MaxBodyBytes      int64
	ServerReadTimeout time.Duration
	GracefulShutdown  time.Duration
}

// fileConfig is the on-disk YAML shape. Serialisation format is out of
// scope for the spec; YAML is used here because it is the config format the
// caddyserver-caddy example pack depends on directly.
type fileConfig struct {
	URLEncodingAlgorithm struct {
		Kind     string `yaml:"kind"` // "base32" | "base32xor"
		Alphabet string `yaml:"alphabet"`
		Key      string `yaml:"key"` // hex-encoded, only read for base32xor
	} `yaml:"url_encoding_algorithm"`
	Host string `yaml:"host"`
	// PublicHost is a pointer so an explicit empty value in the file is
	// applied (and then rejected by Load) rather than treated as absent.
	PublicHost *string `yaml:"public_host"`
}

// Load reads an optional YAML config file at path (skipped entirely when
// path is empty or the file does not exist) and then applies environment
// variable overrides, matching the teacher's env-first Load() shape. It
// always returns a fully populated Config, falling back to the spec §6
// defaults (Base32(Z), 0.0.0.0:3069, changeme.local) when neither source
// supplies a value.
func Load(path string) (Config, error) {
	cfg := Config{
		Algorithm:         codec.Algorithm{Alphabet: codec.Z},
		Host:              defaultHost,
		PublicHost:        defaultPublicHost,
		LogLevel:          defaultLogLevel,
		RequestTimeout:    defaultRequestTimeout,
		MaxBodyBytes:      defaultMaxBodyBytes,
		ServerReadTimeout: defaultServerReadTimeout,
		GracefulShutdown:  defaultGracefulShutdown,
	}

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if cfg.PublicHost == "" {
		return Config{}, errors.New("public_host must not be empty")
	}
	if strings.ContainsAny(cfg.PublicHost, "/") {
		return Config{}, fmt.Errorf("public_host %q must not contain a path", cfg.PublicHost)
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.URLEncodingAlgorithm.Alphabet != "" {
		alphabet, ok := codec.ParseAlphabet(fc.URLEncodingAlgorithm.Alphabet)
		if !ok {
			return fmt.Errorf("unknown alphabet %q", fc.URLEncodingAlgorithm.Alphabet)
		}
		cfg.Algorithm.Alphabet = alphabet
	}
	if fc.URLEncodingAlgorithm.Kind == "base32xor" {
		key, err := decodeHexKey(fc.URLEncodingAlgorithm.Key)
		if err != nil {
			return fmt.Errorf("decode xor key: %w", err)
		}
		cfg.Algorithm.Key = key
	}
	if fc.Host != "" {
		cfg.Host = fc.Host
	}
	if fc.PublicHost != nil {
		cfg.PublicHost = *fc.PublicHost
	}

	return nil
}

func applyEnv(cfg *Config) {
	cfg.Host = getString(envHost, cfg.Host)
	cfg.PublicHost = getString(envPublicHost, cfg.PublicHost)
	cfg.LogLevel = strings.ToLower(getString(envLogLevel, cfg.LogLevel))
	cfg.RequestTimeout = getDuration(envRequestTimeout, cfg.RequestTimeout)
	cfg.MaxBodyBytes = getInt64(envMaxBodyBytes, cfg.MaxBodyBytes)
	cfg.ServerReadTimeout = getDuration(envServerReadTimeout, cfg.ServerReadTimeout)
	cfg.GracefulShutdown = getDuration(envGracefulShutdown, cfg.GracefulShutdown)
}

func decodeHexKey(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

func getString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getInt64(key string, fallback int64) int64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
