package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	appanalysis "github.com/gabe-silva/poker-analyzer/internal/app/analysis"
	apptrainer "github.com/gabe-silva/poker-analyzer/internal/app/trainer"
	"github.com/gabe-silva/poker-analyzer/internal/config"
	"github.com/gabe-silva/poker-analyzer/internal/logging"
	"github.com/gabe-silva/poker-analyzer/internal/store"
	httptransport "github.com/gabe-silva/poker-analyzer/internal/transport/http"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	st, err := store.New(cfg.Server.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()

	trainerSvc := apptrainer.NewService(st, cfg.Trainer.DefaultTrials)
	analysisSvc := appanalysis.NewService()

	r := httptransport.NewRouter(st, cfg.Server, trainerSvc, analysisSvc)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Str("db", cfg.Server.DBPath).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
