package config

import "github.com/caarlos0/env/v11"

type TrainerConfig struct {
	DefaultTrials int `env:"EV_TRIALS" envDefault:"360"`
}

func LoadTrainer() (TrainerConfig, error) {
	var cfg TrainerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
