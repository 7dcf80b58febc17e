// Package scheduler runs the background jobs of the front end on a gocron
// singleton. Jobs never overlap themselves; a slow run delays the next one.
package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotInitialized = errors.New("scheduler not initialized")
	ErrEmptyJobName   = errors.New("job name is required")
	ErrEmptyCronExpr  = errors.New("cron expression is required")
)

var (
	instance *Service
	initOnce sync.Once
	initErr  error
)

// Service owns the gocron scheduler shared by every job.
type Service struct {
	cron     gocron.Scheduler
	stopOnce sync.Once
	stopErr  error
}

// Init creates the singleton. Later calls return the first outcome.
func Init() error {
	initOnce.Do(func() {
		onPanic := gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recovered any) {
			log.Error().
				Str("job_id", jobID.String()).
				Str("job_name", jobName).
				Interface("panic", recovered).
				Msg("Background job panicked")
		})
		cron, err := gocron.NewScheduler(gocron.WithGlobalJobOptions(gocron.WithEventListeners(onPanic)))
		if err != nil {
			initErr = err
			return
		}
		instance = &Service{cron: cron}
	})
	return initErr
}

func ServiceInstance() (*Service, error) {
	if initErr != nil {
		return nil, initErr
	}
	if instance == nil {
		return nil, ErrNotInitialized
	}
	return instance, nil
}

// Run starts the singleton and blocks until ctx is done, then shuts it down.
func Run(ctx context.Context) error {
	svc, err := ServiceInstance()
	if err != nil {
		return err
	}
	svc.Start()
	<-ctx.Done()
	return svc.Stop()
}

// AddJob registers a job on the singleton.
func AddJob(name, cronExpr string, task func()) (gocron.Job, error) {
	svc, err := ServiceInstance()
	if err != nil {
		return nil, err
	}
	return svc.AddJob(name, cronExpr, task)
}

func (s *Service) Start() {
	if s == nil {
		return
	}
	log.Info().Msg("Background jobs starting")
	s.cron.Start()
}

// Stop shuts the scheduler down once; later calls return the same error.
func (s *Service) Stop() error {
	if s == nil {
		return ErrNotInitialized
	}
	s.stopOnce.Do(func() {
		log.Info().Msg("Background jobs stopping")
		s.stopErr = s.cron.Shutdown()
	})
	return s.stopErr
}

// AddJob schedules task on a standard five-field cron expression. A run
// still in progress makes the next tick reschedule instead of overlapping.
func (s *Service) AddJob(name, cronExpr string, task func()) (gocron.Job, error) {
	if s == nil {
		return nil, ErrNotInitialized
	}
	name = strings.TrimSpace(name)
	cronExpr = strings.TrimSpace(cronExpr)
	switch {
	case name == "":
		return nil, ErrEmptyJobName
	case cronExpr == "":
		return nil, ErrEmptyCronExpr
	}

	logger := log.With().Str("job_name", name).Str("cron", cronExpr).Logger()
	job, err := s.cron.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			logger.Debug().Msg("Background job run")
			task()
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to register background job")
		return nil, err
	}
	logger.Info().Msg("Background job registered")
	return job, nil
}
