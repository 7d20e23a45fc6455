package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/account"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api/doctor/packets"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/lecture"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/session"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/view"
)

// reportWait bounds how long a location report waits for the status line.
const reportWait = time.Second

// errUnsupported is what the page sends when navigator.geolocation is missing.
const errUnsupported = "unsupported"

// DashboardModule mounts the per page-load session endpoints: location,
// seating menu and dialogs.
func DashboardModule(registry *session.Registry, lectures *lecture.Manager, accounts *account.Service) api.Module {
	ctl := &DashboardController{registry: registry, lectures: lectures, accounts: accounts}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/dashboard/sessions", ctl.openSession)
		c.GET("/dashboard/sessions/:id/location", ctl.getLocation)
		c.POST("/dashboard/sessions/:id/location", ctl.reportLocation)

		c.POST("/dashboard/sessions/:id/menu/toggle", ctl.toggleMenu)
		c.POST("/dashboard/sessions/:id/menu/click", ctl.clickMenu)

		c.RAW_GET("/dashboard/sessions/:id/dialogs/:name", ctl.openDialog)
		c.POST("/dashboard/sessions/:id/dialogs/cancel", ctl.cancelDialog)
		c.POST("/dashboard/sessions/:id/dialogs/dismiss", ctl.dismissDialog)
	})
}

type DashboardController struct {
	registry *session.Registry
	lectures *lecture.Manager
	accounts *account.Service
}

func (d *DashboardController) session(ctx *gin.Context, doctor *model.Doctor) (*session.Session, *api.APIError) {
	sess, err := d.registry.Get(ctx.Param("id"), doctor.ID)
	if err != nil {
		return nil, toAPIError(err, "could not load dashboard session")
	}
	return sess, nil
}

// POST /api/doctor/dashboard/sessions
func (d *DashboardController) openSession(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	darkMode, err := d.accounts.DarkMode(ctx.Request.Context(), doctor.ID)
	if err != nil {
		return nil, toAPIError(err, "could not load preferences")
	}

	sess := d.registry.Open(doctor.ID)
	log.Info().Str("session_id", sess.ID).Int("doctor_id", doctor.ID).Msg("dashboard session opened")

	return packets.OpenSessionResponse{
		SessionID: sess.ID,
		Status:    sess.Status(),
		Geolocation: packets.GeolocationOptions{
			EnableHighAccuracy: sess.Options.HighAccuracy,
			Timeout:            sess.Options.Timeout.Milliseconds(),
		},
		DarkMode: darkMode,
	}, nil
}

// GET /api/doctor/dashboard/sessions/:id/location
func (d *DashboardController) getLocation(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	sess, apiErr := d.session(ctx, doctor)
	if apiErr != nil {
		return nil, apiErr
	}
	return locationStatus(sess), nil
}

// POST /api/doctor/dashboard/sessions/:id/location
func (d *DashboardController) reportLocation(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	sess, apiErr := d.session(ctx, doctor)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.ReportLocationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var (
		loc       model.Location
		reportErr error
	)
	switch {
	case request.Error == errUnsupported:
		reportErr = session.ErrUnsupported
	case request.Error != "":
		reportErr = errors.New(request.Error)
	case request.Lat == nil || request.Lng == nil:
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "lat and lng are required"}
	default:
		loc = model.Location{Lat: *request.Lat, Lng: *request.Lng}
	}

	if err := sess.Locator().Report(loc, reportErr); err != nil {
		if errors.Is(err, session.ErrTimeout) {
			return nil, &api.APIError{Code: http.StatusConflict, Message: "location request timed out"}
		}
		return nil, &api.APIError{Code: http.StatusConflict, Message: "location already reported"}
	}

	select {
	case <-sess.Resolved():
	case <-time.After(reportWait):
	}
	return locationStatus(sess), nil
}

func locationStatus(sess *session.Session) packets.LocationStatusResponse {
	resp := packets.LocationStatusResponse{Status: sess.Status()}
	if loc, ok := sess.Location(); ok {
		resp.Resolved = true
		resp.Location = &packets.LocationResponse{Lat: loc.Lat, Lng: loc.Lng}
	}
	return resp
}

// POST /api/doctor/dashboard/sessions/:id/menu/toggle
func (d *DashboardController) toggleMenu(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	sess, apiErr := d.session(ctx, doctor)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.MenuResponse{Hidden: sess.Menu.Toggle()}, nil
}

// POST /api/doctor/dashboard/sessions/:id/menu/click
func (d *DashboardController) clickMenu(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	sess, apiErr := d.session(ctx, doctor)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.MenuClickRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	return packets.MenuResponse{Hidden: sess.Menu.Click(request.Target)}, nil
}

// GET /api/doctor/dashboard/sessions/:id/dialogs/:name
func (d *DashboardController) openDialog(ctx *gin.Context) {
	doctor, ok := middleware.GetCurrentDoctor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	sess, apiErr := d.session(ctx, doctor)
	if apiErr != nil {
		ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}

	var current model.Duration
	name := ctx.Param("name")
	if name == view.DialogDuration {
		dur, err := d.lectures.CurrentDuration(ctx.Request.Context(), doctor.ID)
		if err != nil {
			apiErr := toAPIError(err, "could not load lecture")
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		current = dur
	}

	dialog, ok := view.DialogByName(name, current)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown dialog"})
		return
	}

	sess.Menu.Close()
	sess.Modal.Open(dialog.Name)
	ctx.HTML(http.StatusOK, view.DialogTemplate, dialog)
}

// POST /api/doctor/dashboard/sessions/:id/dialogs/cancel
func (d *DashboardController) cancelDialog(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	sess, apiErr := d.session(ctx, doctor)
	if apiErr != nil {
		return nil, apiErr
	}
	sess.Modal.Close()
	return packets.DialogStateResponse{Open: sess.Modal.Current()}, nil
}

// POST /api/doctor/dashboard/sessions/:id/dialogs/dismiss
func (d *DashboardController) dismissDialog(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	sess, apiErr := d.session(ctx, doctor)
	if apiErr != nil {
		return nil, apiErr
	}
	var request packets.DismissDialogRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	sess.Modal.Click(request.Backdrop)
	return packets.DialogStateResponse{Open: sess.Modal.Current()}, nil
}
