package endpoints

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/account"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/lecture"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/session"
)

// toAPIError maps domain errors to the text shown in the form's message
// region. Anything unknown is logged and hidden behind a generic 500.
func toAPIError(err error, fallback string) *api.APIError {
	switch {
	case errors.Is(err, lecture.ErrEmptyName):
		return &api.APIError{Code: http.StatusBadRequest, Message: "Enter lecture name"}
	case errors.Is(err, lecture.ErrLocationUnresolved):
		return &api.APIError{Code: http.StatusBadRequest, Message: "Location not detected yet"}
	case errors.Is(err, lecture.ErrInvalidDuration):
		return &api.APIError{Code: http.StatusBadRequest, Message: "Duration out of range"}
	case errors.Is(err, lecture.ErrNoActiveLecture):
		return &api.APIError{Code: http.StatusNotFound, Message: "No active lecture"}
	case errors.Is(err, account.ErrEmptyPassword):
		return &api.APIError{Code: http.StatusBadRequest, Message: "Password cannot be empty"}
	case errors.Is(err, session.ErrNotFound):
		return &api.APIError{Code: http.StatusNotFound, Message: "dashboard session not found"}
	}
	log.Error().Err(err).Msg(fallback)
	return &api.APIError{Code: http.StatusInternalServerError, Message: fallback}
}
