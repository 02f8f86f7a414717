package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Schedule ScheduleConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// ScheduleConfig carries the clinical scheduling knobs. The grace periods are
// deliberately configuration, not constants: clinics differ on how long after
// slot start a patient counts as a possible no-show and how long a session may
// sit in post-dialysis before the sweep discharges it.
type ScheduleConfig struct {
	NoShowGrace       time.Duration
	PostDialysisGrace time.Duration
	SweepInterval     time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	noShowGrace, err := time.ParseDuration(viper.GetString("SCHEDULE_NO_SHOW_GRACE"))
	if err != nil {
		noShowGrace = 30 * time.Minute
	}

	postDialysisGrace, err := time.ParseDuration(viper.GetString("SCHEDULE_POST_DIALYSIS_GRACE"))
	if err != nil {
		postDialysisGrace = 2 * time.Hour
	}

	sweepInterval, err := time.ParseDuration(viper.GetString("SCHEDULE_SWEEP_INTERVAL"))
	if err != nil {
		sweepInterval = 15 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Schedule: ScheduleConfig{
			NoShowGrace:       noShowGrace,
			PostDialysisGrace: postDialysisGrace,
			SweepInterval:     sweepInterval,
		},
	}

	return config, nil
}
