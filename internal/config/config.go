// Copyright 2025 The Brewflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"

	"github.com/nqvinh/brewflow/internal/types"
)

// Config holds the complete application configuration.
type Config struct {
	Service string       `json:"service_name" env:"APP_NAME" envDefault:"brewflow"`
	Version string       `json:"version"      env:"VERSION"  envDefault:"v0.1.0"`
	Mode    types.Mode   `json:"mode"         env:"MODE"     envDefault:"debug"`
	Brew    BrewConfig   `json:"brew"         envPrefix:"BREW_"`
	Audit   AuditConfig  `json:"audit"        envPrefix:"AUDIT_"`
	Logger  LoggerConfig `json:"logger"       envPrefix:"LOG_"`
}

// BrewConfig bounds the simulated work performed by each workflow step.
type BrewConfig struct {
	// StepMinDelay and StepMaxDelay bound the uniform random duration of a
	// single step. Tests shrink these to keep runs fast.
	StepMinDelay time.Duration `json:"step_min_delay" env:"STEP_MIN_DELAY" envDefault:"1s"`
	StepMaxDelay time.Duration `json:"step_max_delay" env:"STEP_MAX_DELAY" envDefault:"10s"`
}

// LoadConfig builds the configuration from process environment variables,
// falling back to the defaults baked into the struct tags.
func LoadConfig() (*Config, error) {
	cfg := Config{
		Audit: AuditConfig{
			NATS: NATSConfig{
				MaxReconnects: DefaultMaxReconnects,
				ReconnectWait: DefaultReconnectWait,
				DrainTimeout:  DefaultDrainTimeout,
				PingInterval:  DefaultPingInterval,
				MaxPingsOut:   DefaultMaxPingsOut,
				ClientName:    "brewflow",
			},
		},
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	if cfg.Audit.NATS.URL == "" {
		cfg.Audit.NATS.URL = fmt.Sprintf("nats://%s:%s", cfg.Audit.NATS.Host, cfg.Audit.NATS.Port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the rest of the program cannot run with.
func (c *Config) Validate() error {
	if c.Service == "" {
		return errors.New("service name is required")
	}
	if c.Version == "" {
		return errors.New("version is required")
	}
	if c.Brew.StepMinDelay <= 0 {
		return fmt.Errorf("step min delay must be positive, got %v", c.Brew.StepMinDelay)
	}
	if c.Brew.StepMaxDelay < c.Brew.StepMinDelay {
		return fmt.Errorf("step max delay %v is below min delay %v", c.Brew.StepMaxDelay, c.Brew.StepMinDelay)
	}
	if c.Audit.Enabled && c.Audit.NATS.URL == "" {
		return errors.New("audit is enabled but no NATS URL is configured")
	}
	return nil
}

func (c *Config) ServiceName() string { return c.Service }

func (c *Config) GetVersion() string { return c.Version }

func (c *Config) ModeField() types.Mode { return c.Mode }
