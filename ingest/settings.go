// Package ingest implements the authenticated client that pushes per-suite
// result records to an external log-ingestion endpoint.
package ingest

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultHost is the ingestion service domain; the workspace ID is
	// prepended to form the full endpoint host.
	DefaultHost = "ods.opinsights.azure.com"

	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
)

// Settings configures the ingestion client. The shared key is the
// base64-encoded HMAC secret issued by the ingestion service for the
// workspace.
type Settings struct {
	CustomerID string        `yaml:"customer_id"`
	SharedKey  string        `yaml:"shared_key"`
	LogType    string        `yaml:"log_type"`
	Host       string        `yaml:"host"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries uint64        `yaml:"max_retries"`
}

// LoadSettings reads and validates ingestion settings from a YAML file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ingest settings %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse ingest settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ingest settings %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks required fields and applies defaults for the optional
// ones.
func (s *Settings) Validate() error {
	if s.CustomerID == "" {
		return fmt.Errorf("customer_id is required")
	}
	if s.SharedKey == "" {
		return fmt.Errorf("shared_key is required")
	}
	if _, err := base64.StdEncoding.DecodeString(s.SharedKey); err != nil {
		return fmt.Errorf("shared_key is not valid base64: %w", err)
	}
	if s.LogType == "" {
		return fmt.Errorf("log_type is required")
	}
	if s.Host == "" {
		s.Host = DefaultHost
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if s.MaxRetries == 0 {
		s.MaxRetries = DefaultMaxRetries
	}
	return nil
}
