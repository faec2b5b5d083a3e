// SPDX-License-Identifier: MIT

// Package config loads quadra run settings from defaults, QUADRA_* environment
// variables and an optional YAML/JSON/TOML file, in increasing precedence
// (flags bound by the caller win over all three).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/quadra/quadrature"
	"github.com/katalvlaran/quadra/refine"
)

// EnvPrefix is the prefix of every environment key.
const EnvPrefix = "QUADRA"

// Keys.
const (
	KeyIntegrand     = "integrand"
	KeyA             = "a"
	KeyB             = "b"
	KeyEpsilon       = "epsilon"
	KeyRules         = "rules"
	KeyMaxPartitions = "max_partitions"
	KeyTableLimit    = "table_limit"
	KeyCacheSize     = "cache_size"
	KeyLogLevel      = "log_level"
	KeyOutput        = "output"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config is the resolved configuration of one CLI invocation.
type Config struct {
	Integrand     int      `json:"integrand"`
	A             float64  `json:"a"`
	B             float64  `json:"b"`
	Epsilon       float64  `json:"epsilon"`
	Rules         []string `json:"rules"`
	MaxPartitions int      `json:"maxPartitions"`
	TableLimit    int      `json:"tableLimit"`
	CacheSize     int      `json:"cacheSize"`
	LogLevel      string   `json:"logLevel"`
	Output        string   `json:"output"`
}

// Default returns the built-in settings: integrand #1 on [0, 1],
// epsilon 0.01, every rule, engine defaults, info logging, text output.
func Default() Config {
	rules := make([]string, 0, len(quadrature.Kinds()))
	for _, k := range quadrature.Kinds() {
		rules = append(rules, k.String())
	}

	return Config{
		Integrand:     1,
		A:             0,
		B:             1,
		Epsilon:       0.01,
		Rules:         rules,
		MaxPartitions: refine.DefaultMaxPartitions,
		TableLimit:    refine.DefaultTableLimit,
		CacheSize:     refine.DefaultCacheSize,
		LogLevel:      "info",
		Output:        OutputText,
	}
}

// SetDefaults installs Default() into v and enables QUADRA_* lookups.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyIntegrand, d.Integrand)
	v.SetDefault(KeyA, d.A)
	v.SetDefault(KeyB, d.B)
	v.SetDefault(KeyEpsilon, d.Epsilon)
	v.SetDefault(KeyRules, d.Rules)
	v.SetDefault(KeyMaxPartitions, d.MaxPartitions)
	v.SetDefault(KeyTableLimit, d.TableLimit)
	v.SetDefault(KeyCacheSize, d.CacheSize)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyOutput, d.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load resolves a Config from v. When file is non-empty it is read first;
// a missing or malformed file is an error. Numbers given as strings (env,
// flags) accept a decimal comma. The result is validated.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var (
		c   Config
		err error
	)
	if c.A, err = decimal(v, KeyA); err != nil {
		return Config{}, err
	}
	if c.B, err = decimal(v, KeyB); err != nil {
		return Config{}, err
	}
	if c.Epsilon, err = decimal(v, KeyEpsilon); err != nil {
		return Config{}, err
	}
	c.Integrand = v.GetInt(KeyIntegrand)
	c.Rules = splitList(v.GetStringSlice(KeyRules))
	c.MaxPartitions = v.GetInt(KeyMaxPartitions)
	c.TableLimit = v.GetInt(KeyTableLimit)
	c.CacheSize = v.GetInt(KeyCacheSize)
	c.LogLevel = strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel)))
	c.Output = strings.ToLower(strings.TrimSpace(v.GetString(KeyOutput)))

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks every field; bounds order (a < b) is left to the engine
// so that it is reported per rule like any other run failure.
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) || c.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon must be finite and positive (%g)", ErrInvalidConfig, c.Epsilon)
	case c.MaxPartitions <= 0:
		return fmt.Errorf("%w: max_partitions must be positive (%d)", ErrInvalidConfig, c.MaxPartitions)
	case c.TableLimit < 0:
		return fmt.Errorf("%w: table_limit cannot be negative (%d)", ErrInvalidConfig, c.TableLimit)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cache_size cannot be negative (%d)", ErrInvalidConfig, c.CacheSize)
	case len(c.Rules) == 0:
		return fmt.Errorf("%w: at least one rule is required", ErrInvalidConfig)
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: output %q (want text, json or yaml)", ErrInvalidConfig, c.Output)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Kinds(); err != nil {
		return err
	}

	return nil
}

// Kinds parses Rules in order, dropping duplicates.
func (c Config) Kinds() ([]quadrature.Kind, error) {
	out := make([]quadrature.Kind, 0, len(c.Rules))
	seen := make(map[quadrature.Kind]bool, len(c.Rules))
	for _, name := range c.Rules {
		k, err := quadrature.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}

	return out, nil
}

// Level parses LogLevel (debug, info, warn, error).
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	return lvl, nil
}

// RefineOptions maps the engine settings onto refine options.
func (c Config) RefineOptions(logger *slog.Logger) []refine.Option {
	return []refine.Option{
		refine.WithMaxPartitions(c.MaxPartitions),
		refine.WithTableLimit(c.TableLimit),
		refine.WithCacheSize(c.CacheSize),
		refine.WithLogger(logger),
	}
}

// ParseDecimal parses a float that may use a decimal comma ("0,01").
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidConfig, s)
	}

	return f, nil
}

func decimal(v *viper.Viper, key string) (float64, error) {
	f, err := ParseDecimal(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	return f, nil
}

// splitList accepts both ["a", "b"] and a single "a,b" entry as env
// variables arrive.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
