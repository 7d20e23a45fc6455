package main

import (
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/config"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/storage"
)

// InitArchive selects and returns the configured archive backend
func InitArchive(cfg *config.Config) storage.Archive {
	if cfg.UseSpaces {
		spacesArchive, err := storage.NewSpacesArchive(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces archive")
		}
		log.Info().Str("bucket", cfg.SpacesBucket).Msg("archiving lectures to DigitalOcean Spaces")
		return spacesArchive
	}

	local := storage.NewLocalArchive(cfg.ArchiveDir)
	log.Info().Str("dir", cfg.ArchiveDir).Msg("archiving lectures to local disk")
	return local
}
