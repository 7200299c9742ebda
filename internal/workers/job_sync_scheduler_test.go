package workers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/careercompass/api/internal/models"
	"github.com/careercompass/api/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSyncer struct {
	mu    sync.Mutex
	calls []services.SyncInput
	err   error
}

func (s *stubSyncer) Sync(_ context.Context, in services.SyncInput) (*services.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, in)
	if s.err != nil {
		return nil, s.err
	}
	return &services.SyncResult{RunID: "r1", Fetched: 3, Saved: 3}, nil
}

func quietLog() (*logrus.Entry, *test.Hook) {
	l, hook := test.NewNullLogger()
	return logrus.NewEntry(l), hook
}

func TestRunOnceUsesCronTrigger(t *testing.T) {
	syncer := &stubSyncer{}
	log, hook := quietLog()
	s := NewJobSyncScheduler(syncer, "@every 1h", 25, log)

	s.RunOnce(context.Background())

	require.Len(t, syncer.calls, 1)
	assert.Equal(t, services.SyncInput{Limit: 25, Trigger: models.TriggerCron}, syncer.calls[0])
	assert.Equal(t, "scheduled job sync done", hook.LastEntry().Message)
}

func TestRunOnceLogsFailure(t *testing.T) {
	syncer := &stubSyncer{err: errors.New("db down")}
	log, hook := quietLog()
	s := NewJobSyncScheduler(syncer, "@every 1h", 25, log)

	s.RunOnce(context.Background())

	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestRunOnceSkipsCancelledContext(t *testing.T) {
	syncer := &stubSyncer{}
	log, _ := quietLog()
	s := NewJobSyncScheduler(syncer, "@every 1h", 25, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.RunOnce(ctx)

	assert.Empty(t, syncer.calls)
}

func TestStartRejectsBadSpec(t *testing.T) {
	log, _ := quietLog()
	s := NewJobSyncScheduler(&stubSyncer{}, "every now and then", 25, log)

	err := s.Start(context.Background())
	assert.ErrorContains(t, err, "JOBS_SYNC_CRON")
}

func TestStartAndStop(t *testing.T) {
	log, _ := quietLog()
	s := NewJobSyncScheduler(&stubSyncer{}, "@every 1h", 25, log)

	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}
