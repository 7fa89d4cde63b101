package main

import (
	"github.com/clanbase/backend/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) migrate(ct *cli.Context) error {
	if err := s.loadConfig(ct); err != nil {
		return err
	}

	s.loadLogger()

	if err := s.loadDatabase(); err != nil {
		return err
	}

	ctx := s.newContext()
	if err := migration.AutoMigrate(ctx); err != nil {
		return err
	}

	s.logger.Infof("Migration completed")
	return nil
}
