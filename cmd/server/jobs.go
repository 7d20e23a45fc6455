package main

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/session"
)

// sessionMaxIdle is how long an unused dashboard session is kept.
const sessionMaxIdle = 30 * time.Minute

// StartJobs schedules the background maintenance jobs.
func StartJobs(registry *session.Registry) *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("@every 10m", func() {
		registry.Sweep(sessionMaxIdle)
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule session sweep")
	}
	c.Start()
	log.Info().Msg("cron jobs started")
	return c
}
