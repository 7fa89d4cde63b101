package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Name = "clanbase"
	s.app.Usage = "Backend of the campaigns and clans service"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path of the TOML configuration file",
			Value: "config.toml",
		},
	}
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Category:    "Api",
			Description: `Starts the main service that serves all campaign, clan, leaderboard, and referral apis.`,
		},
		{
			Action:      s.migrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Category:    "Database",
			Description: `Creates or updates every table of the relational store.`,
		},
	}
}
