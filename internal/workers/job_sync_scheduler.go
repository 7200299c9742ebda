// Package workers runs background jobs next to the HTTP server.
package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/careercompass/api/internal/models"
	"github.com/careercompass/api/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// syncTimeout bounds one scheduled sync run.
const syncTimeout = 2 * time.Minute

// Syncer is the slice of services.JobsService the scheduler needs.
type Syncer interface {
	Sync(ctx context.Context, in services.SyncInput) (*services.SyncResult, error)
}

// JobSyncScheduler triggers a job sync on a cron spec such as "@every 6h"
// or "0 */6 * * *".
type JobSyncScheduler struct {
	cron   *cron.Cron
	syncer Syncer
	spec   string
	limit  int
	log    *logrus.Entry
}

func NewJobSyncScheduler(syncer Syncer, spec string, limit int, log *logrus.Entry) *JobSyncScheduler {
	cl := cronLogger{log: log}
	return &JobSyncScheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		syncer: syncer,
		spec:   spec,
		limit:  limit,
		log:    log,
	}
}

// Start registers the job and starts the cron loop. Runs stop when ctx is
// cancelled or Stop is called.
func (s *JobSyncScheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid JOBS_SYNC_CRON %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.WithField("spec", s.spec).Info("job sync scheduler started")
	return nil
}

// Stop waits for a running sync to finish.
func (s *JobSyncScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("job sync scheduler stopped")
}

func (s *JobSyncScheduler) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	res, err := s.syncer.Sync(ctx, services.SyncInput{Limit: s.limit, Trigger: models.TriggerCron})
	if err != nil {
		s.log.WithError(err).Error("scheduled job sync failed")
		return
	}
	s.log.WithFields(logrus.Fields{
		"run_id":        res.RunID,
		"fetched":       res.Fetched,
		"saved":         res.Saved,
		"fallback_used": res.FallbackUsed,
	}).Info("scheduled job sync done")
}

// cronLogger routes robfig/cron logs to logrus.
type cronLogger struct {
	log *logrus.Entry
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.WithFields(kvFields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.WithError(err).WithFields(kvFields(keysAndValues)).Error(msg)
}

func kvFields(kv []any) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return f
}
