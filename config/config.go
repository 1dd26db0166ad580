// Package config loads the replverify configuration from YAML, applying environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/couchbase/replverify/objstore/objval"
	"github.com/couchbase/replverify/retry"
	"github.com/couchbase/replverify/verify/compare"
	"github.com/couchbase/replverify/verify/diag"
	"github.com/couchbase/replverify/verify/poll"
)

// Config is the top level replverify configuration.
type Config struct {
	Log          LogConfig           `yaml:"log"`
	Poll         PollConfig          `yaml:"poll"`
	Diagnostics  DiagnosticsConfig   `yaml:"diagnostics"`
	RateLimit    RateLimitConfig     `yaml:"rate_limit"`
	Metrics      MetricsConfig       `yaml:"metrics"`
	Backbeat     BackbeatConfig      `yaml:"backbeat"`
	Workers      int                 `yaml:"workers"`
	Source       BackendConfig       `yaml:"source"`
	Destinations []DestinationConfig `yaml:"destinations"`

	// Locations are additional replication locations of the source bucket which aren't configured as destinations.
	Locations []string `yaml:"locations"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PollConfig controls how long, and how often, replication status is polled.
type PollConfig struct {
	Delay  time.Duration `yaml:"delay"`
	Budget time.Duration `yaml:"budget"`
}

type DiagnosticsConfig struct {
	Dir string `yaml:"dir"`
}

// RateLimitConfig limits the request rate against each backend, a zero rate disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

type BackbeatConfig struct {
	Endpoint string `yaml:"endpoint"`
	Retries  int    `yaml:"retries"`

	// Algorithm is the retry back off algorithm, one of 'fibonacci', 'exponential' or 'linear'.
	Algorithm string `yaml:"algorithm"`
}

// BackendConfig identifies a bucket/container on a given backend, along with the credentials used to reach it.
type BackendConfig struct {
	Name            string      `yaml:"name"`
	Provider        string      `yaml:"provider"`
	Bucket          string      `yaml:"bucket"`
	Region          string      `yaml:"region"`
	Endpoint        string      `yaml:"endpoint"`
	PathStyle       bool        `yaml:"path_style"`
	AccessKeyID     string      `yaml:"access_key_id"`
	SecretAccessKey string      `yaml:"secret_access_key"`
	Azure           AzureConfig `yaml:"azure"`
	GCP             GCPConfig   `yaml:"gcp"`
}

type AzureConfig struct {
	AccountURL       string `yaml:"account_url"`
	ConnectionString string `yaml:"connection_string"`
}

type GCPConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	Project         string `yaml:"project"`
}

// DestinationConfig is a replication destination, and how its replicas should be compared with the source.
type DestinationConfig struct {
	BackendConfig `yaml:",inline"`

	Family             string `yaml:"family"`
	Location           string `yaml:"location"`
	PrefixSourceBucket bool   `yaml:"prefix_source_bucket"`
	ExpectReplica      bool   `yaml:"expect_replica"`
}

// Load reads the configuration at the given path, an empty path results in the default configuration. Environment
// overrides are applied before the result is validated.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Poll: PollConfig{
			Delay:  poll.DefaultDelay,
			Budget: poll.DefaultBudget,
		},
		Diagnostics: DiagnosticsConfig{
			Dir: diag.DefaultDir(),
		},
		Backbeat: BackbeatConfig{
			Retries:   3,
			Algorithm: retry.AlgorithmExponential.String(),
		},
	}
}

// applyEnv overrides the configuration using 'REPLVERIFY_' prefixed environment variables.
func (c *Config) applyEnv() {
	if val, ok := GetString(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = val
	}

	if val, ok := GetString(EnvPrefix + "LOG_FORMAT"); ok {
		c.Log.Format = val
	}

	if val, ok := GetDuration(EnvPrefix + "POLL_DELAY"); ok {
		c.Poll.Delay = val
	}

	if val, ok := GetDuration(EnvPrefix + "POLL_BUDGET"); ok {
		c.Poll.Budget = val
	}

	if val, ok := GetString(EnvPrefix + "DIAGNOSTICS_DIR"); ok {
		c.Diagnostics.Dir = val
	}

	if val, ok := GetFloat(EnvPrefix + "RATE_LIMIT_REQUESTS_PER_SECOND"); ok {
		c.RateLimit.RequestsPerSecond = val
	}

	if val, ok := GetInt(EnvPrefix + "RATE_LIMIT_BURST"); ok {
		c.RateLimit.Burst = val
	}

	if val, ok := GetString(EnvPrefix + "METRICS_TEXTFILE"); ok {
		c.Metrics.Textfile = val
	}

	if val, ok := GetString(EnvPrefix + "BACKBEAT_ENDPOINT"); ok {
		c.Backbeat.Endpoint = val
	}

	if val, ok := GetInt(EnvPrefix + "BACKBEAT_RETRIES"); ok {
		c.Backbeat.Retries = val
	}

	if val, ok := GetString(EnvPrefix + "BACKBEAT_ALGORITHM"); ok {
		c.Backbeat.Algorithm = val
	}

	if val, ok := GetInt(EnvPrefix + "WORKERS"); ok {
		c.Workers = val
	}

	if val, ok := GetString(EnvPrefix + "SOURCE_ACCESS_KEY_ID"); ok {
		c.Source.AccessKeyID = val
	}

	if val, ok := GetString(EnvPrefix + "SOURCE_SECRET_ACCESS_KEY"); ok {
		c.Source.SecretAccessKey = val
	}

	if val, ok := GetBool(EnvPrefix + "SOURCE_PATH_STYLE"); ok {
		c.Source.PathStyle = val
	}
}

// Validate returns an error describing the first invalid setting.
func (c *Config) Validate() error {
	if c.Poll.Delay <= 0 {
		return errors.New("poll delay must be positive")
	}

	if c.Poll.Budget < c.Poll.Delay {
		return fmt.Errorf("poll budget %s must be at least the poll delay %s", c.Poll.Budget, c.Poll.Delay)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate limit must not be negative")
	}

	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}

	if _, err := c.Backbeat.AlgorithmValue(); err != nil {
		return fmt.Errorf("invalid backbeat config: %w", err)
	}

	if err := c.Source.validate(); err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}

	names := make(map[string]struct{}, len(c.Destinations))

	for i, dest := range c.Destinations {
		if err := dest.validate(); err != nil {
			return fmt.Errorf("invalid destination %d: %w", i, err)
		}

		if _, ok := names[dest.DisplayName()]; ok {
			return fmt.Errorf("duplicate destination name '%s'", dest.DisplayName())
		}

		names[dest.DisplayName()] = struct{}{}
	}

	return nil
}

// ReplicationLocations returns every known replication location of the source bucket, those of the destinations
// followed by the additional locations, without duplicates.
func (c *Config) ReplicationLocations() []string {
	var (
		locations = make([]string, 0, len(c.Destinations)+len(c.Locations))
		seen      = make(map[string]struct{})
	)

	add := func(location string) {
		if _, ok := seen[location]; ok || location == "" {
			return
		}

		seen[location] = struct{}{}
		locations = append(locations, location)
	}

	for _, dest := range c.Destinations {
		add(dest.Location)
	}

	for _, location := range c.Locations {
		add(location)
	}

	return locations
}

// AlgorithmValue returns the parsed retry algorithm.
func (b BackbeatConfig) AlgorithmValue() (retry.Algorithm, error) {
	return retry.ParseAlgorithm(b.Algorithm)
}

// ProviderValue returns the parsed backend provider.
func (b BackendConfig) ProviderValue() (objval.Provider, error) {
	return objval.ParseProvider(b.Provider)
}

// DisplayName returns the configured name, falling back to the bucket.
func (b BackendConfig) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}

	return b.Bucket
}

func (b BackendConfig) validate() error {
	if b.Bucket == "" {
		return errors.New("bucket is required")
	}

	provider, err := b.ProviderValue()
	if err != nil {
		return err
	}

	if provider == objval.ProviderAzure && b.Azure.AccountURL == "" && b.Azure.ConnectionString == "" {
		return errors.New("azure requires either an account url or a connection string")
	}

	return nil
}

// Rule returns the comparison rule for the destination.
func (d DestinationConfig) Rule() (compare.Rule, error) {
	family, err := compare.ParseFamily(d.Family)
	if err != nil {
		return compare.Rule{}, err
	}

	rule, err := compare.ForFamily(family, d.Location)
	if err != nil {
		return compare.Rule{}, err
	}

	if d.ExpectReplica {
		rule = rule.WithReplicaStatus()
	}

	return rule, nil
}

func (d DestinationConfig) validate() error {
	if err := d.BackendConfig.validate(); err != nil {
		return err
	}

	family, err := compare.ParseFamily(d.Family)
	if err != nil {
		return err
	}

	if family != compare.FamilyScality && d.Location == "" {
		return fmt.Errorf("location is required for the '%s' family", d.Family)
	}

	return nil
}
