package main

import (
	"context"
	"net/http"

	"github.com/clanbase/backend/config"
	"github.com/clanbase/backend/internal/domain"
	"github.com/clanbase/backend/internal/repository"
	"github.com/clanbase/backend/pkg/logger"
	"github.com/clanbase/backend/pkg/router"
	"github.com/clanbase/backend/pkg/xcontext"
	"github.com/clanbase/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient xredis.Client

	userRepo          repository.UserRepository
	campaignRepo      repository.CampaignRepository
	clanRepo          repository.ClanRepository
	participantRepo   repository.ParticipantRepository
	leaderboardRepo   repository.LeaderboardRepository
	referralRepo      repository.ReferralRepository
	rewardHistoryRepo repository.RewardHistoryRepository

	userDomain        domain.UserDomain
	campaignDomain    domain.CampaignDomain
	clanDomain        domain.ClanDomain
	leaderboardDomain domain.LeaderboardDomain
	referralDomain    domain.ReferralDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(ct *cli.Context) error {
	cfg, err := config.Load(ct.String("config"))
	if err != nil {
		return err
	}

	s.configs = cfg
	return nil
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() error {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                      s.configs.Database.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
		DontSupportRenameIndex:   true,
		DontSupportRenameColumn:  true,
	}), &gorm.Config{})

	return err
}

func (s *srv) loadRedis(ctx context.Context) error {
	if s.configs.Redis.Addr == "" {
		s.logger.Warnf("No redis address configured, leaderboard cache is disabled")
		return nil
	}

	var err error
	s.redisClient, err = xredis.NewClient(ctx)
	return err
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.campaignRepo = repository.NewCampaignRepository()
	s.clanRepo = repository.NewClanRepository()
	s.participantRepo = repository.NewParticipantRepository()
	s.leaderboardRepo = repository.NewLeaderboardRepository()
	s.referralRepo = repository.NewReferralRepository()
	s.rewardHistoryRepo = repository.NewRewardHistoryRepository()
}

func (s *srv) loadDomains() {
	s.referralDomain = domain.NewReferralDomain(s.referralRepo, s.userRepo, s.rewardHistoryRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.rewardHistoryRepo, s.referralDomain)
	s.campaignDomain = domain.NewCampaignDomain(
		s.campaignRepo, s.clanRepo, s.participantRepo, s.leaderboardRepo, s.userRepo, s.redisClient)
	s.clanDomain = domain.NewClanDomain(
		s.clanRepo, s.campaignRepo, s.participantRepo, s.leaderboardRepo, s.userRepo, s.redisClient)
	s.leaderboardDomain = domain.NewLeaderboardDomain(
		s.leaderboardRepo, s.campaignRepo, s.clanRepo, s.redisClient)
}

// newContext builds the root context used outside of the http request cycle,
// e.g. for migrations and the redis client.
func (s *srv) newContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	if s.db != nil {
		ctx = xcontext.WithDB(ctx, s.db)
	}

	return ctx
}
