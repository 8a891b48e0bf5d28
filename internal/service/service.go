// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/wneessen/meteobuf/client"
	"github.com/wneessen/meteobuf/envelope"
	"github.com/wneessen/meteobuf/export"
	"github.com/wneessen/meteobuf/internal/cache"
	"github.com/wneessen/meteobuf/internal/config"
	"github.com/wneessen/meteobuf/internal/http"
	"github.com/wneessen/meteobuf/internal/logger"
)

const (
	updateJobName = "weather_update_job"

	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

// ErrNoLocations is returned if the configuration holds no coordinates.
var ErrNoLocations = errors.New("no locations configured")

// ErrAllCallsFailed is returned if no call of an update returned locations.
var ErrAllCallsFailed = errors.New("all API calls failed")

// Fetcher runs a batch of API calls.
type Fetcher interface {
	FetchBatch(ctx context.Context, calls []client.Call) []client.Result
}

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	fetcher   Fetcher
	exporter  export.Exporter
	influx    *export.Influx
	scheduler gocron.Scheduler
	output    io.Writer

	outputLock sync.Mutex
}

// New returns a Service that writes to output. If the configuration names an output file,
// output is ignored.
func New(conf *config.Config, log *logger.Logger, output io.Writer) (*Service, error) {
	if !conf.HasLocations() {
		return nil, ErrNoLocations
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	exporter, err := export.New(conf.Output.Format, export.Options{
		Template:    conf.Output.Template,
		Measurement: conf.Influx.Measurement,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	service := &Service{
		config:    conf,
		logger:    log,
		fetcher:   newClient(conf, log),
		exporter:  exporter,
		scheduler: scheduler,
		output:    output,
	}
	if conf.Influx.Addr != "" {
		service.influx = &export.Influx{Measurement: conf.Influx.Measurement}
	}
	return service, nil
}

// newClient stacks the response cache on top of the retrying HTTP transport.
func newClient(conf *config.Config, log *logger.Logger) *client.Client {
	backoff := http.DefaultBackoff
	backoff.MaxRetries = conf.API.Retries
	var transport http.Performer = http.NewResilient(http.NewWithTimeout(log, conf.API.Timeout), backoff,
		breakerFailures, breakerCooldown, log)
	if conf.API.CacheTTL > 0 {
		transport = cache.New(transport, conf.API.CacheTTL)
	}
	return client.New(
		client.WithTransport(transport),
		client.WithLogger(log.Logger),
		client.WithConcurrency(conf.API.Concurrency),
		client.WithMethod(conf.API.Method),
	)
}

// Run fetches and exports once. With a watch interval configured it repeats the update on
// that interval until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.config.Watch.Interval <= 0 {
		return s.update(ctx)
	}

	if err := s.createScheduledJob(ctx, s.config.Watch.Interval, s.watch, updateJobName); err != nil {
		return err
	}
	s.scheduler.Start()

	// Wait for the context to cancel
	<-ctx.Done()
	return s.scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// watch is the scheduled form of update. Failures are logged and retried on the next tick.
func (s *Service) watch(ctx context.Context) {
	if err := s.update(ctx); err != nil {
		s.logger.Error("failed to update weather data", logger.Err(err))
	}
}

// update fetches all configured locations and exports them. Calls that fail are logged and
// left out; the update fails only if no call succeeded.
func (s *Service) update(ctx context.Context) error {
	calls := s.Calls()
	var locations []envelope.Location
	var errs []error
	for i, result := range s.fetcher.FetchBatch(ctx, calls) {
		if result.Err != nil {
			s.logger.Warn("API call failed", slog.Int("call", i), logger.Err(result.Err))
			errs = append(errs, result.Err)
			continue
		}
		locations = append(locations, result.Locations...)
	}
	if len(errs) == len(calls) {
		return fmt.Errorf("%w: %w", ErrAllCallsFailed, errors.Join(errs...))
	}
	s.logger.Debug("weather data updated", slog.Int("locations", len(locations)),
		slog.Int("failed_calls", len(errs)))

	if err := s.write(locations); err != nil {
		return err
	}
	if s.influx != nil {
		conf := export.InfluxConfig{
			Addr:     s.config.Influx.Addr,
			Username: s.config.Influx.Username,
			Password: s.config.Influx.Password,
			Database: s.config.Influx.Database,
			Timeout:  s.config.Influx.Timeout,
		}
		if err := s.influx.WriteInflux(conf, locations); err != nil {
			return fmt.Errorf("failed to upload to InfluxDB: %w", err)
		}
	}
	return nil
}

// write renders locations into a buffer first so a failing exporter leaves no partial output.
func (s *Service) write(locations []envelope.Location) error {
	buf := bytes.NewBuffer(nil)
	if err := s.exporter.Export(buf, locations); err != nil {
		return fmt.Errorf("failed to export weather data: %w", err)
	}

	s.outputLock.Lock()
	defer s.outputLock.Unlock()
	if s.config.Output.File != "" {
		if err := os.WriteFile(s.config.Output.File, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	if _, err := buf.WriteTo(s.output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
