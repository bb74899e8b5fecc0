package app

import (
	"context"
	"errors"
	"time"

	"cofounder-match/internal/config"
	"cofounder-match/internal/database"
	dbpostgres "cofounder-match/internal/database/postgres"
	"cofounder-match/internal/domain/matching"
	"cofounder-match/internal/infrastructure/cache"
	"cofounder-match/internal/metrics"
	"cofounder-match/internal/pkg/jwt"
	"cofounder-match/internal/repository"
	"cofounder-match/internal/usecase"
	"cofounder-match/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the service.
type Container struct {
	Config  config.Config
	Log     *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Metrics *metrics.Metrics
	JWT     *jwt.HMACService
	Hub     *ws.Hub

	Discovery *usecase.Discovery
	Decisions *usecase.Decision
	Matches   *usecase.Matches
	Skills    *usecase.Skill
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Log:     log,
		DB:      db,
		Cache:   cache.NewRedis(cfg.Redis, log),
		Metrics: metrics.New(),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
		),
		Hub: ws.NewHub(log),
	}

	profiles := repository.NewPostgresProfileRepository(db)
	ledger := repository.NewPostgresLedgerRepository(db)

	c.Discovery = usecase.NewDiscoveryUsecase(profiles, ledger, c.Cache, c.Metrics, usecase.DiscoveryConfig{
		Limits: matching.Limits{
			MaxOwned:  cfg.Discovery.MaxOwnedSkills,
			MaxWanted: cfg.Discovery.MaxWantedSkills,
		},
		QueueTTL:       cfg.Discovery.QueueTTL,
		CandidateLimit: cfg.Discovery.CandidateLimit,
	}, log)
	c.Decisions = usecase.NewDecisionUsecase(ledger, c.Discovery, ws.NewNotifier(c.Hub, log), c.Metrics, log)
	c.Matches = usecase.NewMatchUsecase(repository.NewPostgresMatchRepository(db), log)
	c.Skills = usecase.NewSkillUsecase(repository.NewPostgresSkillRepository(db), c.Cache, cfg.Redis.TTL, log)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
