package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/account"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api/doctor/packets"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/session"
)

func PreferencesModule(accounts *account.Service, registry *session.Registry) api.Module {
	ctl := &PreferencesController{accounts: accounts, registry: registry}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/preferences", ctl.getPreferences)
		c.POST("/preferences/dark-mode/toggle", ctl.toggleDarkMode)
	})
}

type PreferencesController struct {
	accounts *account.Service
	registry *session.Registry
}

// GET /api/doctor/preferences
func (p *PreferencesController) getPreferences(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	on, err := p.accounts.DarkMode(ctx.Request.Context(), doctor.ID)
	if err != nil {
		return nil, toAPIError(err, "could not load preferences")
	}
	return packets.PreferencesResponse{DarkMode: on}, nil
}

// POST /api/doctor/preferences/dark-mode/toggle
func (p *PreferencesController) toggleDarkMode(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	var request packets.ToggleDarkModeRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
	}

	on, err := p.accounts.ToggleDarkMode(ctx.Request.Context(), doctor.ID)
	if err != nil {
		return nil, toAPIError(err, "could not toggle dark mode")
	}
	closeDialog(p.registry, request.SessionID, doctor.ID)

	return packets.PreferencesResponse{DarkMode: on}, nil
}
