package config

type AppConfig struct {
	Server  ServerConfig
	Trainer TrainerConfig
	Log     LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	trainerCfg, err := LoadTrainer()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:  serverCfg,
		Trainer: trainerCfg,
		Log:     logCfg,
	}, nil
}
