package services

import (
	"context"
	"time"

	"github.com/careercompass/api/internal/cache"
	"github.com/careercompass/api/internal/models"
	pgrepo "github.com/careercompass/api/internal/repositories/postgres"
	"github.com/careercompass/api/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const lookupsCacheKey = "lookups:v1"

type LookupService interface {
	Lookups(ctx context.Context) (*models.Lookups, error)
	WorldStats(ctx context.Context) ([]models.WorldStat, error)
	Ping(ctx context.Context) error
}

type lookupService struct {
	repo  pgrepo.LookupRepository
	cache cache.Cache
	ttl   time.Duration
	log   *logrus.Entry
}

func NewLookupService(repo pgrepo.LookupRepository, c cache.Cache, ttl time.Duration, log *logrus.Entry) LookupService {
	if c == nil {
		c = cache.Noop{}
	}
	return &lookupService{repo: repo, cache: c, ttl: ttl, log: log}
}

func (s *lookupService) Lookups(ctx context.Context) (*models.Lookups, error) {
	const op = "LookupService.Lookups"

	var out models.Lookups
	if s.ttl > 0 {
		hit, err := s.cache.GetJSON(ctx, lookupsCacheKey, &out)
		if err != nil {
			s.log.WithError(err).Warn("lookup cache read failed")
		}
		if hit {
			return &out, nil
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.RiasecCodes, err = s.repo.RiasecCodes(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.MbtiTypes, err = s.repo.MbtiTypes(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Skills, err = s.repo.Skills(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load lookups", err)
	}

	if s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, lookupsCacheKey, out, s.ttl); err != nil {
			s.log.WithError(err).Warn("lookup cache write failed")
		}
	}
	return &out, nil
}

func (s *lookupService) WorldStats(ctx context.Context) ([]models.WorldStat, error) {
	const op = "LookupService.WorldStats"

	out, err := s.repo.WorldStats(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load world stats", err)
	}
	return out, nil
}

func (s *lookupService) Ping(ctx context.Context) error {
	const op = "LookupService.Ping"

	if err := s.repo.Ping(ctx); err != nil {
		return utils.E(utils.CodeUnavailable, op, "database unreachable", err)
	}
	return nil
}
