package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api/doctor/packets"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/lecture"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/session"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/view"
)

// qrSize is the edge length in pixels of the code popup image.
const qrSize = 256

func LectureModule(lectures *lecture.Manager, registry *session.Registry) api.Module {
	ctl := &LectureController{lectures: lectures, registry: registry}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/lectures", ctl.createLecture)
		c.GET("/lectures/current", ctl.getCurrentLecture)
		c.RAW_GET("/lectures/current/code.png", ctl.getCodeImage)
		c.PUT("/lectures/current/duration", ctl.updateDuration)
	})
}

type LectureController struct {
	lectures *lecture.Manager
	registry *session.Registry
}

func toLectureResponse(l model.Lecture) packets.LectureResponse {
	return packets.LectureResponse{
		LectureName: l.LectureName,
		Code:        l.Code,
		Duration:    packets.DurationResponse{Hours: l.Duration.Hours, Minutes: l.Duration.Minutes},
		Location:    packets.LocationResponse{Lat: l.Location.Lat, Lng: l.Location.Lng},
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}

// POST /api/doctor/lectures
func (l *LectureController) createLecture(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	var request packets.CreateLectureRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	sess, err := l.registry.Get(request.SessionID, doctor.ID)
	if err != nil {
		return nil, toAPIError(err, "could not load dashboard session")
	}

	in := lecture.CreateInput{Name: request.LectureName}
	if request.Hours != nil {
		in.Hours = *request.Hours
	}
	if request.Minutes != nil {
		in.Minutes = *request.Minutes
	}

	created, err := l.lectures.Create(ctx.Request.Context(), doctor.ID, sess, in)
	if err != nil {
		return nil, toAPIError(err, "could not create lecture")
	}

	return packets.CreateLectureResponse{
		Lecture: toLectureResponse(created),
		Code:    created.Code,
		Message: view.Success("Lecture Created Successfully"),
	}, nil
}

// GET /api/doctor/lectures/current
func (l *LectureController) getCurrentLecture(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	current, err := l.lectures.Current(ctx.Request.Context(), doctor.ID)
	if err != nil {
		return nil, toAPIError(err, "could not load lecture")
	}
	return toLectureResponse(current), nil
}

// GET /api/doctor/lectures/current/code.png
func (l *LectureController) getCodeImage(ctx *gin.Context) {
	doctor, ok := middleware.GetCurrentDoctor(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	current, err := l.lectures.Current(ctx.Request.Context(), doctor.ID)
	if err != nil {
		apiErr := toAPIError(err, "could not load lecture")
		ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}

	png, err := qrcode.Encode(strconv.Itoa(current.Code), qrcode.Medium, qrSize)
	if err != nil {
		log.Error().Err(err).Int("doctor_id", doctor.ID).Msg("could not render lecture code")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not render code"})
		return
	}
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, "image/png", png)
}

// PUT /api/doctor/lectures/current/duration
func (l *LectureController) updateDuration(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	var request packets.UpdateDurationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	updated, err := l.lectures.EditDuration(ctx.Request.Context(), doctor.ID, model.Duration{Hours: request.Hours, Minutes: request.Minutes})
	if err != nil {
		return nil, toAPIError(err, "could not update lecture")
	}
	closeDialog(l.registry, request.SessionID, doctor.ID)

	return packets.LectureUpdateResponse{
		Lecture: toLectureResponse(updated),
		Message: view.Success("Lecture duration updated"),
	}, nil
}
