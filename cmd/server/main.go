package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/account"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/config"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/db"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/lecture"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/notify"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/redis"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/session"
)

func main() {
	// a missing .env is fine; the process environment still applies
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore(db.DB)

	rdb := redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redis.Ping(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Str("address", cfg.RedisAddress).Msg("redis unreachable")
	}
	cancel()
	storageSlots := redis.NewSlots(rdb)
	denylist := redis.NewDenylist(rdb)

	registry := session.NewRegistry(session.NewResolver(session.DefaultOptions()))

	lectureCfg := lecture.Config{
		Repository: lecture.NewSlotRepository(storageSlots),
		Archive:    InitArchive(cfg),
	}
	if cfg.MQTTBrokerURL != "" {
		client, err := notify.Connect(cfg.MQTTBrokerURL, cfg.MQTTClientID)
		if err != nil {
			log.Error().Err(err).Msg("MQTT unavailable, lecture announcements disabled")
		} else {
			defer notify.Disconnect(client)
			lectureCfg.Notifier = notify.NewMQTTNotifier(client)
		}
	}
	lectures := lecture.NewManager(lectureCfg)
	accounts := account.NewService(storageSlots, store, registry, denylist)

	jobs := StartJobs(registry)
	defer jobs.Stop()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, cfg, Services{
		Store:    store,
		Denylist: denylist,
		Registry: registry,
		Lectures: lectures,
		Accounts: accounts,
	}, LoadTemplates())

	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
