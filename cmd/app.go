package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/careercompass/api/config"
	"github.com/careercompass/api/internal/auth"
	"github.com/careercompass/api/internal/cache"
	"github.com/careercompass/api/internal/events"
	"github.com/careercompass/api/internal/logger"
	"github.com/careercompass/api/internal/providers/jobs"
	mongorepo "github.com/careercompass/api/internal/repositories/mongo"
	pgrepo "github.com/careercompass/api/internal/repositories/postgres"
	"github.com/careercompass/api/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const providerHTTPTimeout = 15 * time.Second

// runtime holds the process-wide connections. Redis and mongo are optional.
type runtime struct {
	cfg   *config.Config
	log   *logrus.Logger
	db    *gorm.DB
	rdb   *redis.Client
	mongo *mongo.Client
}

func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, log: logger.New(cfg.LogLevel, cfg.LogFormat)}

	rt.db, err = config.OpenPostgres(cfg.DatabaseURL, rt.log.IsLevelEnabled(logrus.DebugLevel))
	if err != nil {
		return nil, err
	}
	rt.log.Info("postgres connected")

	if cfg.RedisURL != "" {
		rt.rdb, err = config.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			rt.close()
			return nil, err
		}
		rt.log.Info("redis connected")
	}

	if cfg.MongoURI != "" {
		rt.mongo, err = config.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			rt.close()
			return nil, err
		}
		if err := config.EnsureMongoIndexes(ctx, rt.mongo.Database(cfg.MongoDB)); err != nil {
			rt.close()
			return nil, err
		}
		rt.log.Info("mongodb connected")
	}
	return rt, nil
}

func (rt *runtime) close() {
	if rt.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = rt.mongo.Disconnect(ctx)
	}
	if rt.rdb != nil {
		_ = rt.rdb.Close()
	}
	if rt.db != nil {
		_ = config.ClosePostgres(rt.db)
	}
}

type serviceSet struct {
	careers  services.CareerService
	lookups  services.LookupService
	analysis services.AnalysisService
	tracking services.TrackingService
	jobs     services.JobsService
	auth     services.AuthService
	tokens   *auth.MockTokens
	resolver *auth.Resolver
}

func (rt *runtime) services() serviceSet {
	var c cache.Cache = cache.Noop{}
	var pub events.Publisher = events.Noop{}
	if rt.rdb != nil {
		c = cache.NewRedisCache(rt.rdb, "career-compass:")
		pub = events.NewRedisPublisher(rt.rdb)
	}

	var runs mongorepo.SyncRunRepository
	if rt.mongo != nil {
		runs = mongorepo.NewSyncRunRepo(rt.mongo.Database(rt.cfg.MongoDB), config.SyncRunsCollection)
	}

	careerRepo := pgrepo.NewCareerRepo(rt.db)
	jobRepo := pgrepo.NewJobRepo(rt.db)

	careers := services.NewCareerService(careerRepo, c, rt.cfg.CatalogCacheTTL, logger.Component(rt.log, "careers"))
	tracking := services.NewTrackingService(pgrepo.NewHistoryRepo(rt.db), pgrepo.NewChecklistRepo(rt.db), careers)
	httpClient := &http.Client{Timeout: providerHTTPTimeout}

	tokens := auth.NewMockTokens(rt.cfg.Auth.JWTSecret)
	var firebase *auth.FirebaseVerifier
	if rt.cfg.Auth.FirebaseProjectID != "" {
		firebase = auth.NewFirebaseVerifier(rt.cfg.Auth.FirebaseProjectID, auth.NewGoogleCerts(httpClient))
	}

	return serviceSet{
		careers:  careers,
		lookups:  services.NewLookupService(pgrepo.NewLookupRepo(rt.db), c, rt.cfg.CatalogCacheTTL, logger.Component(rt.log, "lookups")),
		analysis: services.NewAnalysisService(careers, jobRepo, pgrepo.NewAnalysisRunRepo(rt.db), tracking),
		tracking: tracking,
		jobs: services.NewJobsService(services.JobsServiceDeps{
			Provider:     jobs.FromConfig(rt.cfg, httpClient),
			Jobs:         jobRepo,
			Careers:      careers,
			Runs:         runs,
			Events:       pub,
			DefaultLimit: rt.cfg.Jobs.SyncLimit,
			Log:          logger.Component(rt.log, "jobs-sync"),
		}),
		auth:     services.NewAuthService(pgrepo.NewUserRepo(rt.db), tokens),
		tokens:   tokens,
		resolver: auth.NewResolver(firebase, tokens),
	}
}
