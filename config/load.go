package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configurations from the given TOML file. Secrets and the
// database credentials can be overridden with environment variables so they
// never need to be committed with the file.
func Load(path string) (Configs, error) {
	cfg := defaultConfigs()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	overrideFromEnv(&cfg)
	return cfg, nil
}

func defaultConfigs() Configs {
	return Configs{
		Env: "local",
		ApiServer: ServerConfigs{
			Host:         "0.0.0.0",
			Port:         "8000",
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Session: SessionConfigs{
			Name: "session",
		},
		Campaign: CampaignConfigs{
			ClanCooldown:         30 * 24 * time.Hour,
			ReferralCampaignID:   "campaign_referral",
			ReferralRewardPoints: 100,
			ReferralCodeLength:   9,
		},
	}
}

func overrideFromEnv(cfg *Configs) {
	setIfPresent := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setIfPresent(&cfg.Env, "ENV")
	setIfPresent(&cfg.Database.Host, "MYSQL_HOST")
	setIfPresent(&cfg.Database.Port, "MYSQL_PORT")
	setIfPresent(&cfg.Database.Database, "MYSQL_DATABASE")
	setIfPresent(&cfg.Database.User, "MYSQL_USER")
	setIfPresent(&cfg.Database.Password, "MYSQL_PASSWORD")
	setIfPresent(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	setIfPresent(&cfg.Session.Secret, "SESSION_SECRET")
	setIfPresent(&cfg.Redis.Addr, "REDIS_ADDR")
}
