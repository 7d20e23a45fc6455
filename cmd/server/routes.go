package main

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/account"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/config"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/db"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api"
	doctorapi "github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api/doctor/endpoints"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/lecture"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/session"
)

// Services are the wired components the HTTP modules depend on.
type Services struct {
	Store    db.Store
	Denylist middleware.Denylist
	Registry *session.Registry
	Lectures *lecture.Manager
	Accounts *account.Service
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svc Services, tmpl *template.Template) {
	r.SetHTMLTemplate(tmpl)
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/doctor",
		Auth:   false,
	},
		doctorapi.AuthPublicModule(cfg.JWTSecret, svc.Store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/doctor",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Store:     svc.Store,
		Denylist:  svc.Denylist,
	},
		doctorapi.AuthSessionModule(cfg.JWTSecret, svc.Store, svc.Accounts, svc.Registry),
		doctorapi.DashboardModule(svc.Registry, svc.Lectures, svc.Accounts),
		doctorapi.LectureModule(svc.Lectures, svc.Registry),
		doctorapi.PreferencesModule(svc.Accounts, svc.Registry),
	)
}
