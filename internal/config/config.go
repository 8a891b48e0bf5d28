// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kkyr/fig"
)

const (
	configEnv       = "METEOBUF"
	DefaultURL      = "https://api.open-meteo.com/v1/forecast"
	DefaultFormat   = "text"
	DefaultConfFile = "config.toml"
)

// ErrLocationMismatch is returned if latitudes and longitudes differ in length.
var ErrLocationMismatch = errors.New("number of latitudes and longitudes differ")

var validate = validator.New()

// Config represents the application's configuration structure.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	API struct {
		URL string `fig:"url" default:"https://api.open-meteo.com/v1/forecast"`
		// Allowed values: GET, POST
		Method string `fig:"method" default:"GET"`
		// Allowed values: 1 to 64
		Concurrency int           `fig:"concurrency" default:"4"`
		Timeout     time.Duration `fig:"timeout" default:"10s"`
		Retries     int           `fig:"retries" default:"3"`

		// A zero TTL disables the response cache.
		CacheTTL time.Duration `fig:"cache_ttl" default:"5m"`

		// Number of coordinates sent per request. Zero sends all locations in one request.
		LocationsPerRequest int `fig:"locations_per_request"`
	} `fig:"api"`

	Locations struct {
		Latitudes  []float64 `fig:"latitudes"`
		Longitudes []float64 `fig:"longitudes"`
		Elevations []float64 `fig:"elevations"`
	} `fig:"locations"`

	Variables struct {
		Current      []string `fig:"current" default:"[temperature_2m,weather_code]"`
		Minutely15   []string `fig:"minutely_15"`
		Hourly       []string `fig:"hourly" default:"[temperature_2m,precipitation]"`
		Daily        []string `fig:"daily"`
		Models       []string `fig:"models"`
		Timezone     string   `fig:"timezone" default:"auto"`
		ForecastDays int      `fig:"forecast_days" default:"3"`
		PastDays     int      `fig:"past_days"`
	} `fig:"variables"`

	Output struct {
		// Allowed values: text, template, json, csv, msgpack, parquet, influx
		Format   string `fig:"format" default:"text"`
		Template string `fig:"template"`
		File     string `fig:"file"`
	} `fig:"output"`

	// A zero interval fetches once and exits.
	Watch struct {
		Interval time.Duration `fig:"interval"`
	} `fig:"watch"`

	Influx struct {
		Addr        string        `fig:"addr"`
		Username    string        `fig:"username"`
		Password    string        `fig:"password"`
		Database    string        `fig:"database" default:"weather"`
		Measurement string        `fig:"measurement" default:"weather"`
		Timeout     time.Duration `fig:"timeout" default:"5s"`
	} `fig:"influx"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if err := validate.Var(c.API.URL, "required,http_url"); err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.API.URL, err)
	}
	c.API.Method = strings.ToUpper(c.API.Method)
	if err := validate.Var(c.API.Method, "oneof=GET POST"); err != nil {
		return fmt.Errorf("invalid request method: %s", c.API.Method)
	}
	if err := validate.Var(c.API.Concurrency, "min=1,max=64"); err != nil {
		return fmt.Errorf("invalid concurrency: %d", c.API.Concurrency)
	}
	if err := validate.Var(c.API.Retries, "min=0,max=10"); err != nil {
		return fmt.Errorf("invalid number of retries: %d", c.API.Retries)
	}
	if err := validate.Var(c.API.LocationsPerRequest, "min=0,max=1000"); err != nil {
		return fmt.Errorf("invalid locations per request: %d", c.API.LocationsPerRequest)
	}
	if c.API.Timeout <= 0 || c.API.CacheTTL < 0 {
		return fmt.Errorf("invalid API timings: timeout %s, cache TTL %s", c.API.Timeout, c.API.CacheTTL)
	}

	if err := validate.Var(c.Locations.Latitudes, "dive,min=-90,max=90"); err != nil {
		return fmt.Errorf("invalid latitude: %w", err)
	}
	if err := validate.Var(c.Locations.Longitudes, "dive,min=-180,max=180"); err != nil {
		return fmt.Errorf("invalid longitude: %w", err)
	}
	if len(c.Locations.Latitudes) != len(c.Locations.Longitudes) {
		return fmt.Errorf("%w: %d latitudes, %d longitudes", ErrLocationMismatch,
			len(c.Locations.Latitudes), len(c.Locations.Longitudes))
	}
	if n := len(c.Locations.Elevations); n > 1 && n != len(c.Locations.Latitudes) {
		return fmt.Errorf("%w: %d elevations for %d locations", ErrLocationMismatch, n,
			len(c.Locations.Latitudes))
	}

	if err := validate.Var(c.Variables.ForecastDays, "min=0,max=16"); err != nil {
		return fmt.Errorf("invalid forecast days: %d", c.Variables.ForecastDays)
	}
	if err := validate.Var(c.Variables.PastDays, "min=0,max=92"); err != nil {
		return fmt.Errorf("invalid past days: %d", c.Variables.PastDays)
	}

	c.Output.Format = strings.ToLower(c.Output.Format)
	if c.Output.Format == "" {
		c.Output.Format = DefaultFormat
	}
	if err := validate.Var(c.Output.Format, "oneof=text template json csv msgpack parquet influx"); err != nil {
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}
	if c.Watch.Interval < 0 || (c.Watch.Interval > 0 && c.Watch.Interval < time.Minute) {
		return fmt.Errorf("invalid watch interval: %s, must be zero or at least 1m", c.Watch.Interval)
	}
	if c.Influx.Addr != "" {
		if err := validate.Var(c.Influx.Addr, "http_url"); err != nil {
			return fmt.Errorf("invalid InfluxDB address %q: %w", c.Influx.Addr, err)
		}
	}

	return nil
}

// HasLocations reports whether at least one coordinate pair is configured.
func (c *Config) HasLocations() bool {
	return len(c.Locations.Latitudes) > 0
}
