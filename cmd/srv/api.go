package main

import (
	"net/http"

	"github.com/clanbase/backend/internal/middleware"
	"github.com/clanbase/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	if err := s.loadConfig(ct); err != nil {
		return err
	}

	s.loadLogger()

	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.loadRedis(s.newContext()); err != nil {
		return err
	}

	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting api server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	onlyTokenAuthRouter := s.router.Branch()
	onlyTokenAuthRouter.Before(middleware.NewAuthVerifier().Middleware())
	{
		router.POST(onlyTokenAuthRouter, "/createCampaign", s.campaignDomain.Create)
		router.POST(onlyTokenAuthRouter, "/joinCampaign", s.campaignDomain.Join)
		router.POST(onlyTokenAuthRouter, "/createClan", s.clanDomain.Create)
		router.POST(onlyTokenAuthRouter, "/joinClan", s.clanDomain.Join)
		router.POST(onlyTokenAuthRouter, "/awardPoints", s.leaderboardDomain.AwardPoints)
		router.POST(onlyTokenAuthRouter, "/createReferral", s.referralDomain.Create)
		router.POST(onlyTokenAuthRouter, "/creditReferral", s.referralDomain.CreditIfPending)
		router.GET(onlyTokenAuthRouter, "/getMe", s.userDomain.GetMe)
		router.GET(onlyTokenAuthRouter, "/getRewardHistory", s.userDomain.GetRewardHistory)
	}

	optionalAuthRouter := s.router.Branch()
	optionalAuthRouter.Before(middleware.NewAuthVerifier().WithOptional().Middleware())
	{
		router.GET(optionalAuthRouter, "/getCampaigns", s.campaignDomain.GetList)
		router.GET(optionalAuthRouter, "/getCampaign", s.campaignDomain.GetByID)
		router.GET(optionalAuthRouter, "/getClans", s.clanDomain.GetList)
		router.GET(optionalAuthRouter, "/getClan", s.clanDomain.GetByID)
		router.GET(optionalAuthRouter, "/getLeaderboard", s.leaderboardDomain.GetLeaderboard)
	}

	publicRouter := s.router.Branch()
	publicRouter.After(middleware.HandleSaveSession())
	{
		router.POST(publicRouter, "/register", s.userDomain.Register)
	}
}
