package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/careercompass/api/config"
	"github.com/careercompass/api/internal/events"
	"github.com/careercompass/api/internal/models"
	"github.com/careercompass/api/internal/providers/jobs"
	"github.com/careercompass/api/internal/reconcile"
	mongorepo "github.com/careercompass/api/internal/repositories/mongo"
	pgrepo "github.com/careercompass/api/internal/repositories/postgres"
	"github.com/careercompass/api/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MaxSyncLimit     = config.MaxSyncLimit
	MaxSyncSearchLen = 120
	defaultRunsLimit = 20
)

type SyncInput struct {
	Limit   int
	Search  string
	Trigger models.SyncTrigger
}

type SyncResult struct {
	RunID         string  `json:"runId"`
	Fetched       int     `json:"fetched"`
	Saved         int     `json:"saved"`
	Matched       int     `json:"matched"`
	Source        string  `json:"source"`
	Provider      string  `json:"provider"`
	ProviderError *string `json:"providerError"`
	FallbackUsed  bool    `json:"fallbackUsed"`
}

type JobsService interface {
	List(ctx context.Context, f models.JobFilter) ([]models.JobListing, error)
	// Sync pulls postings from the configured provider, links them to
	// careers and upserts them in one transaction. A provider failure is
	// not fatal: the static fallback list is stored instead.
	Sync(ctx context.Context, in SyncInput) (*SyncResult, error)
	RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error)
}

type jobsService struct {
	provider     jobs.Provider
	jobs         pgrepo.JobRepository
	careers      CareerService
	runs         mongorepo.SyncRunRepository // nil when mongo is not configured
	events       events.Publisher
	defaultLimit int
	log          *logrus.Entry
	now          func() time.Time
}

type JobsServiceDeps struct {
	Provider     jobs.Provider
	Jobs         pgrepo.JobRepository
	Careers      CareerService
	Runs         mongorepo.SyncRunRepository
	Events       events.Publisher
	DefaultLimit int
	Log          *logrus.Entry
}

func NewJobsService(d JobsServiceDeps) JobsService {
	pub := d.Events
	if pub == nil {
		pub = events.Noop{}
	}
	limit := d.DefaultLimit
	if limit <= 0 {
		limit = 40
	}
	return &jobsService{
		provider:     d.Provider,
		jobs:         d.Jobs,
		careers:      d.Careers,
		runs:         d.Runs,
		events:       pub,
		defaultLimit: limit,
		log:          d.Log,
		now:          time.Now,
	}
}

func (s *jobsService) List(ctx context.Context, f models.JobFilter) ([]models.JobListing, error) {
	const op = "JobsService.List"

	f.Limit = clampLimit(f.Limit, defaultPageLimit, maxPageLimit)
	out, err := s.jobs.List(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return out, nil
}

func (s *jobsService) Sync(ctx context.Context, in SyncInput) (*SyncResult, error) {
	const op = "JobsService.Sync"

	limit := clampLimit(in.Limit, s.defaultLimit, MaxSyncLimit)
	if utf8.RuneCountInString(in.Search) > MaxSyncSearchLen {
		return nil, utils.E(utils.CodeInvalidArgument, op, "search must be at most 120 characters", nil)
	}
	if in.Trigger == "" {
		in.Trigger = models.TriggerAPI
	}

	started := s.now().UTC()
	runID := uuid.NewString()
	log := s.log.WithFields(logrus.Fields{
		"run_id":   runID,
		"trigger":  in.Trigger,
		"provider": s.provider.Key(),
		"limit":    limit,
	})

	source, err := s.jobs.EnsureSource(ctx, s.provider.Key(), s.provider.BaseURL())
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to ensure job source", err)
	}

	candidates, err := s.careers.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	res := &SyncResult{
		RunID:    runID,
		Source:   source.SourceKey,
		Provider: s.provider.Key(),
	}

	postings, err := s.provider.Fetch(ctx, jobs.Query{Limit: limit, Search: in.Search})
	if err != nil {
		msg := err.Error()
		res.ProviderError = &msg
		res.FallbackUsed = true
		postings = jobs.Fallback(started)
		log.WithError(err).Warn("provider fetch failed, using fallback jobs")
	}

	matcher := reconcile.NewMatcher(candidates)
	rows := make([]models.Job, 0, len(postings))
	for _, p := range postings {
		row := toJob(source.ID, p)
		if id, ok := matcher.Match(p.Title); ok {
			row.CareerID = &id
			res.Matched++
		}
		rows = append(rows, row)
	}
	res.Fetched = len(rows)

	saved, err := s.jobs.UpsertBatch(ctx, rows)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save jobs", err)
	}
	res.Saved = saved

	log.WithFields(logrus.Fields{
		"fetched":       res.Fetched,
		"saved":         res.Saved,
		"matched":       res.Matched,
		"fallback_used": res.FallbackUsed,
	}).Info("job sync finished")

	s.audit(ctx, log, in, limit, started, res)
	if err := s.events.Publish(ctx, events.JobsSyncChannel, res); err != nil {
		log.WithError(err).Warn("publish sync event failed")
	}
	return res, nil
}

func (s *jobsService) audit(ctx context.Context, log *logrus.Entry, in SyncInput, limit int, started time.Time, res *SyncResult) {
	if s.runs == nil {
		return
	}
	run := &models.SyncRun{
		RunID:        res.RunID,
		Trigger:      in.Trigger,
		Provider:     res.Provider,
		Source:       res.Source,
		Search:       in.Search,
		Limit:        limit,
		Fetched:      res.Fetched,
		Saved:        res.Saved,
		Matched:      res.Matched,
		FallbackUsed: res.FallbackUsed,
		StartedAt:    started,
		FinishedAt:   s.now().UTC(),
	}
	if res.ProviderError != nil {
		run.ProviderError = *res.ProviderError
	}
	if err := s.runs.Insert(ctx, run); err != nil {
		log.WithError(err).Warn("record sync run failed")
	}
}

func (s *jobsService) RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	const op = "JobsService.RecentRuns"

	if s.runs == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "sync run history is not configured", nil)
	}
	out, err := s.runs.Recent(ctx, clampLimit(limit, defaultRunsLimit, maxPageLimit))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list sync runs", err)
	}
	return out, nil
}

func toJob(sourceID int64, p jobs.Posting) models.Job {
	return models.Job{
		SourceID:       sourceID,
		ExternalID:     p.ExternalID,
		Title:          p.Title,
		Company:        p.Company,
		Location:       p.Location,
		RemoteType:     p.RemoteType,
		EmploymentType: p.EmploymentType,
		SalaryMin:      p.SalaryMin,
		SalaryMax:      p.SalaryMax,
		SalaryCurrency: p.SalaryCurrency,
		ApplyURL:       p.ApplyURL,
		SourceURL:      nonEmpty(p.SourceURL),
		Description:    p.Description,
		PostedAt:       p.PostedAt,
		RawPayload:     []byte(p.RawPayload),
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
