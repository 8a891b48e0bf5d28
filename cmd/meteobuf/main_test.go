// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/wneessen/meteobuf/internal/config"
)

func TestApplyFlags(t *testing.T) {
	parse := func(t *testing.T, args ...string) (*pflag.FlagSet, *flagValues, *config.Config) {
		t.Helper()
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		values := registerFlags(flags)
		if err := flags.Parse(args); err != nil {
			t.Fatalf("failed to parse flags: %s", err)
		}
		conf, err := config.New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		return flags, values, conf
	}

	t.Run("flags override the config", func(t *testing.T) {
		flags, values, conf := parse(t, "--lat", "52.52,48.85", "--lon", "13.41,2.35", "--hourly", "wind_speed_10m",
			"-f", "CSV", "--watch", "5m", "--loglevel", "debug")
		if err := applyFlags(flags, values, conf); err != nil {
			t.Fatalf("failed to apply flags: %s", err)
		}
		if diff := cmp.Diff([]float64{52.52, 48.85}, conf.Locations.Latitudes); diff != "" {
			t.Errorf("latitudes mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"wind_speed_10m"}, conf.Variables.Hourly); diff != "" {
			t.Errorf("hourly variables mismatch (-want +got):\n%s", diff)
		}
		if conf.Output.Format != "csv" {
			t.Errorf("expected format csv, got %s", conf.Output.Format)
		}
		if conf.Watch.Interval != 5*time.Minute {
			t.Errorf("expected watch interval 5m, got %s", conf.Watch.Interval)
		}
		if conf.LogLevel != slog.LevelDebug {
			t.Errorf("expected log level debug, got %s", conf.LogLevel)
		}
	})
	t.Run("unset flags keep the config", func(t *testing.T) {
		flags, values, conf := parse(t)
		if err := applyFlags(flags, values, conf); err != nil {
			t.Fatalf("failed to apply flags: %s", err)
		}
		if diff := cmp.Diff([]string{"temperature_2m", "precipitation"}, conf.Variables.Hourly); diff != "" {
			t.Errorf("hourly variables mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("mismatching coordinates fail validation", func(t *testing.T) {
		flags, values, conf := parse(t, "--lat", "52.52,48.85", "--lon", "13.41")
		if err := applyFlags(flags, values, conf); err == nil {
			t.Error("expected validation to fail")
		}
	})
	t.Run("invalid log levels fail", func(t *testing.T) {
		flags, values, conf := parse(t, "--loglevel", "loud")
		if err := applyFlags(flags, values, conf); err == nil {
			t.Error("expected invalid log level to fail")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if path, file := findConfigFile(); path != "" || file != "" {
		t.Errorf("expected no config file, got %s/%s", path, file)
	}
}
