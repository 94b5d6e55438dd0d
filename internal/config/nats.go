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

import "time"

const (
	DefaultReconnectWait = 2 * time.Second
	DefaultDrainTimeout  = 30 * time.Second
	DefaultPingInterval  = 2 * time.Minute

	DefaultMaxReconnects = -1 // reconnect forever
	DefaultMaxPingsOut   = 2
)

// AuditConfig configures the append-only audit sink. When Enabled is false
// step events only go to the structured logger.
type AuditConfig struct {
	Enabled bool       `json:"enabled" env:"ENABLED" envDefault:"false"`
	Stream  string     `json:"stream"  env:"STREAM"  envDefault:"BREW_AUDIT"`
	NATS    NATSConfig `json:"nats"    envPrefix:"NATS_"`
}

// NATSConfig holds connection settings for the JetStream audit sink.
type NATSConfig struct {
	URL           string        `json:"url"            env:"URL"`
	Host          string        `json:"host"           env:"HOST" envDefault:"localhost"`
	Port          string        `json:"port"           env:"PORT" envDefault:"4222"`
	MaxReconnects int           `json:"max_reconnects" env:"MAX_RECONNECTS"`
	ReconnectWait time.Duration `json:"reconnect_wait" env:"RECONNECT_WAIT"`
	DrainTimeout  time.Duration `json:"drain_timeout"  env:"DRAIN_TIMEOUT"`
	PingInterval  time.Duration `json:"ping_interval"  env:"PING_INTERVAL"`
	MaxPingsOut   int           `json:"max_pings_out"  env:"MAX_PINGS_OUT"`
	ClientName    string        `json:"client_name"    env:"CLIENT_NAME"`
}

// natz.Config interface methods.
func (c *Config) Endpoint() string                 { return c.Audit.NATS.URL }
func (c *Config) NATSMaxReconnects() int           { return c.Audit.NATS.MaxReconnects }
func (c *Config) NATSReconnectWait() time.Duration { return c.Audit.NATS.ReconnectWait }
func (c *Config) NATSDrainTimeout() time.Duration  { return c.Audit.NATS.DrainTimeout }
func (c *Config) NATSPingInterval() time.Duration  { return c.Audit.NATS.PingInterval }
func (c *Config) NATSMaxPingsOut() int             { return c.Audit.NATS.MaxPingsOut }
func (c *Config) NATSClientName() string           { return c.Audit.NATS.ClientName }
