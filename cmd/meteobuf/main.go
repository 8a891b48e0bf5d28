// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the meteobuf command line client.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/wneessen/meteobuf/export"
	"github.com/wneessen/meteobuf/internal/config"
	"github.com/wneessen/meteobuf/internal/logger"
	"github.com/wneessen/meteobuf/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type flagValues struct {
	configPath string
	envFile    string
	showVer    bool

	url          string
	method       string
	latitudes    []float64
	longitudes   []float64
	elevations   []float64
	current      []string
	minutely15   []string
	hourly       []string
	daily        []string
	models       []string
	forecastDays int
	format       string
	template     string
	output       string
	watch        time.Duration
	logLevel     string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	flags := pflag.NewFlagSet("meteobuf", pflag.ContinueOnError)
	values := registerFlags(flags)
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if values.showVer {
		fmt.Printf("meteobuf %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	// Environment from .env files is only a fallback for the real environment
	if err := godotenv.Load(values.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error("failed to load env file", logger.Err(err), slog.String("file", values.envFile))
		os.Exit(1)
	}

	conf, err := loadConfig(values.configPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	if err = applyFlags(flags, values, conf); err != nil {
		log.Error("invalid command line arguments", logger.Err(err))
		os.Exit(1)
	}

	log = logger.New(conf.LogLevel)
	serv, err := service.New(conf, log, os.Stdout)
	if err != nil {
		log.Error("failed to initialize meteobuf service", logger.Err(err))
		os.Exit(1)
	}

	log.Debug("starting meteobuf", slog.String("version", version), slog.String("commit", commit),
		slog.String("date", date))
	if err = serv.Run(ctx); err != nil {
		log.Error("failed to fetch weather data", logger.Err(err))
		os.Exit(1)
	}
}

func registerFlags(flags *pflag.FlagSet) *flagValues {
	values := new(flagValues)
	flags.StringVarP(&values.configPath, "config", "c", "", "path to the config file")
	flags.StringVar(&values.envFile, "env-file", ".env", "path to an optional .env file")
	flags.BoolVarP(&values.showVer, "version", "v", false, "print the version and exit")

	flags.StringVar(&values.url, "url", config.DefaultURL, "Open-Meteo API endpoint")
	flags.StringVar(&values.method, "method", "GET", "HTTP method, GET or POST")
	flags.Float64SliceVar(&values.latitudes, "lat", nil, "latitudes, comma separated")
	flags.Float64SliceVar(&values.longitudes, "lon", nil, "longitudes, comma separated")
	flags.Float64SliceVar(&values.elevations, "elevation", nil, "elevations, comma separated")
	flags.StringSliceVar(&values.current, "current", nil, "current variables")
	flags.StringSliceVar(&values.minutely15, "minutely-15", nil, "15-minutely variables")
	flags.StringSliceVar(&values.hourly, "hourly", nil, "hourly variables")
	flags.StringSliceVar(&values.daily, "daily", nil, "daily variables")
	flags.StringSliceVar(&values.models, "models", nil, "weather models")
	flags.IntVar(&values.forecastDays, "forecast-days", 0, "number of forecast days")
	flags.StringVarP(&values.format, "format", "f", config.DefaultFormat,
		"output format: "+strings.Join(export.Formats, ", "))
	flags.StringVar(&values.template, "template", "", "text/template for the template format")
	flags.StringVarP(&values.output, "output", "o", "", "write the output to this file instead of stdout")
	flags.DurationVar(&values.watch, "watch", 0, "fetch again on this interval until interrupted")
	flags.StringVar(&values.logLevel, "loglevel", "", "log level: debug, info, warn or error")
	return values
}

// loadConfig reads the config file given on the command line, the one in the default
// location, or the defaults.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

// applyFlags overrides conf with the flags set on the command line and validates the result.
func applyFlags(flags *pflag.FlagSet, values *flagValues, conf *config.Config) error {
	if flags.Changed("url") {
		conf.API.URL = values.url
	}
	if flags.Changed("method") {
		conf.API.Method = values.method
	}
	if flags.Changed("lat") {
		conf.Locations.Latitudes = values.latitudes
	}
	if flags.Changed("lon") {
		conf.Locations.Longitudes = values.longitudes
	}
	if flags.Changed("elevation") {
		conf.Locations.Elevations = values.elevations
	}
	if flags.Changed("current") {
		conf.Variables.Current = values.current
	}
	if flags.Changed("minutely-15") {
		conf.Variables.Minutely15 = values.minutely15
	}
	if flags.Changed("hourly") {
		conf.Variables.Hourly = values.hourly
	}
	if flags.Changed("daily") {
		conf.Variables.Daily = values.daily
	}
	if flags.Changed("models") {
		conf.Variables.Models = values.models
	}
	if flags.Changed("forecast-days") {
		conf.Variables.ForecastDays = values.forecastDays
	}
	if flags.Changed("format") {
		conf.Output.Format = values.format
	}
	if flags.Changed("template") {
		conf.Output.Template = values.template
	}
	if flags.Changed("output") {
		conf.Output.File = values.output
	}
	if flags.Changed("watch") {
		conf.Watch.Interval = values.watch
	}
	if flags.Changed("loglevel") {
		if err := conf.LogLevel.UnmarshalText([]byte(values.logLevel)); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}
	return conf.Validate()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "meteobuf", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
