/*
 * config.go, part of gopackmol.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config reads the gopackmol settings from the environment and the
// solvent presets from a TOML file.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	packmol "github.com/rmera/gopackmol"
	"github.com/rmera/gopackmol/internal/logging"
	"github.com/rmera/gopackmol/run"
)

// Config holds all the settings.
type Config struct {
	Solver       SolverConfig
	Correlation  CorrelationConfig
	Logging      LogConfig
	SolventsFile string `envconfig:"PACKMOL_SOLVENTS"`
}

// SolverConfig says how to run the Packmol executable.
type SolverConfig struct {
	Executable string        `envconfig:"PACKMOL_BIN" default:"packmol"`
	Args       []string      `envconfig:"PACKMOL_ARGS"`
	TempDir    string        `envconfig:"PACKMOL_TMPDIR"`
	KeepInput  bool          `envconfig:"PACKMOL_KEEP_INPUT" default:"false"`
	Timeout    time.Duration `envconfig:"PACKMOL_TIMEOUT" default:"0s"`
}

// CorrelationConfig holds the volume to count correlation used when no solvent
// preset gives one.
type CorrelationConfig struct {
	Slope     float64 `envconfig:"PACKMOL_SLOPE" default:"0.09"`
	Intercept float64 `envconfig:"PACKMOL_INTERCEPT" default:"19.75"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Solver.Timeout < 0 {
		return nil, packmol.NewError(packmol.InvalidInput, "config.Load", "negative PACKMOL_TIMEOUT %s", cfg.Solver.Timeout)
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{Executable: "packmol"},
		Correlation: CorrelationConfig{
			Slope:     packmol.DefaultSlope,
			Intercept: packmol.DefaultIntercept,
		},
		Logging: LogConfig{Level: "info"},
	}
}

// Run returns the orchestrator settings.
func (c *Config) Run() run.Config {
	return run.Config{
		Executable: c.Solver.Executable,
		Args:       c.Solver.Args,
		TempDir:    c.Solver.TempDir,
		KeepInput:  c.Solver.KeepInput,
		Timeout:    c.Solver.Timeout,
	}
}

// Corr returns the fallback correlation.
func (c *Config) Corr() *packmol.Correlation {
	return &packmol.Correlation{Slope: c.Correlation.Slope, Intercept: c.Correlation.Intercept}
}

// Log returns the logger settings. Logs go to stderr.
func (c *Config) Log() logging.Config {
	return logging.Config{Level: c.Logging.Level, Development: c.Logging.Development}
}
