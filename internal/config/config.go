// Package config loads the workloadsim configuration from defaults, an
// optional YAML file and WORKLOADSIM_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g.
// WORKLOADSIM_DISTRIBUTED_SLOTS for distributed.slots.
const EnvPrefix = "WORKLOADSIM"

// Config represents the complete simulation configuration
type Config struct {
	Distributed DistributedConfig `mapstructure:"distributed" yaml:"distributed"`
	Workloads   WorkloadsConfig   `mapstructure:"workloads" yaml:"workloads"`
	Driver      DriverConfig      `mapstructure:"driver" yaml:"driver"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
}

// DistributedConfig shapes the round-robin distributed task
type DistributedConfig struct {
	// Slots is the distribution size
	Slots int `mapstructure:"slots" yaml:"slots"`
	// Items is the number of suppliers queued at start
	Items int `mapstructure:"items" yaml:"items"`
	// RunsPerItem is how many times each supplier runs before escaping
	RunsPerItem int `mapstructure:"runs_per_item" yaml:"runs_per_item"`
}

// WorkloadsConfig shapes the simple workload queue task
type WorkloadsConfig struct {
	// Count is the number of conditional workloads queued at start
	Count int `mapstructure:"count" yaml:"count"`
	// Budget is how many computations each workload performs
	Budget int `mapstructure:"budget" yaml:"budget"`
	// EveryNth makes a workload eligible only on every Nth cycle (1 = always)
	EveryNth int `mapstructure:"every_nth" yaml:"every_nth"`
}

// DriverConfig controls the tick loop
type DriverConfig struct {
	IntervalMs int `mapstructure:"interval_ms" yaml:"interval_ms"`
	// Cycles stops the simulation after this many cycles (0 = until interrupted)
	Cycles           int  `mapstructure:"cycles" yaml:"cycles"`
	BackoffInitialMs int  `mapstructure:"backoff_initial_ms" yaml:"backoff_initial_ms"`
	BackoffMaxMs     int  `mapstructure:"backoff_max_ms" yaml:"backoff_max_ms"`
	PinCPU           bool `mapstructure:"pin_cpu" yaml:"pin_cpu"`
	CPU              int  `mapstructure:"cpu" yaml:"cpu"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables the endpoint
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Distributed: DistributedConfig{
			Slots:       20,
			Items:       1000,
			RunsPerItem: 3,
		},
		Workloads: WorkloadsConfig{
			Count:    50,
			Budget:   5,
			EveryNth: 2,
		},
		Driver: DriverConfig{
			IntervalMs:       50,
			Cycles:           0,
			BackoffInitialMs: 200,
			BackoffMaxMs:     5000,
		},
	}
}

// SetDefaults registers every default on v so environment overrides are
// picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("distributed.slots", d.Distributed.Slots)
	v.SetDefault("distributed.items", d.Distributed.Items)
	v.SetDefault("distributed.runs_per_item", d.Distributed.RunsPerItem)

	v.SetDefault("workloads.count", d.Workloads.Count)
	v.SetDefault("workloads.budget", d.Workloads.Budget)
	v.SetDefault("workloads.every_nth", d.Workloads.EveryNth)

	v.SetDefault("driver.interval_ms", d.Driver.IntervalMs)
	v.SetDefault("driver.cycles", d.Driver.Cycles)
	v.SetDefault("driver.backoff_initial_ms", d.Driver.BackoffInitialMs)
	v.SetDefault("driver.backoff_max_ms", d.Driver.BackoffMaxMs)
	v.SetDefault("driver.pin_cpu", d.Driver.PinCPU)
	v.SetDefault("driver.cpu", d.Driver.CPU)

	v.SetDefault("metrics.addr", d.Metrics.Addr)
}

// Load builds the configuration from defaults, the file at path (when
// non-empty) and the environment, then validates it.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// Interval returns the tick period as a duration
func (c *DriverConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// BackoffInitial returns the first backoff delay as a duration
func (c *DriverConfig) BackoffInitial() time.Duration {
	return time.Duration(c.BackoffInitialMs) * time.Millisecond
}

// BackoffMax returns the backoff cap as a duration
func (c *DriverConfig) BackoffMax() time.Duration {
	return time.Duration(c.BackoffMaxMs) * time.Millisecond
}

// YAML renders the configuration as a YAML document
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
