package main

import (
	"html/template"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/view"
)

// LoadTemplates parses the embedded dialog templates
func LoadTemplates() *template.Template {
	tmpl, err := view.ParseTemplates()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse dialog templates")
	}
	return tmpl
}
