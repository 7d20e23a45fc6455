package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/account"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/db"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/api/doctor/packets"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/session"
	"github.com/Nixie-Tech-LLC/lecturedesk/internal/view"
)

// AuthPublicModule mounts public auth endpoints (/auth/signup, /auth/login)
func AuthPublicModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, store, nil, nil)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/signup", ctl.doctorSignup)
		c.PUBLIC_POST("/auth/login", ctl.doctorLogin)
	})
}

// AuthSessionModule mounts profile, password and logout endpoints (JWT required)
func AuthSessionModule(jwtSecret string, store db.Store, accounts *account.Service, registry *session.Registry) api.Module {
	ctl := newAccountManager(jwtSecret, store, accounts, registry)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", ctl.getCurrentProfile)
		c.PUT("/auth/password", ctl.changePassword)
		c.POST("/auth/logout", ctl.logout)
	})
}

type AccountManager struct {
	jwtSecret string
	store     db.Store
	accounts  *account.Service
	registry  *session.Registry
}

func newAccountManager(secret string, store db.Store, accounts *account.Service, registry *session.Registry) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store, accounts: accounts, registry: registry}
}

// POST /api/doctor/auth/signup
func (a *AccountManager) doctorSignup(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if existing, _ := a.store.GetDoctorByEmail(ctx.Request.Context(), request.Email); existing != nil {
		log.Warn().Str("email", request.Email).Msg("signup email already registered")
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
	}

	if account.NormalizePassword(request.Password) == "" {
		return nil, toAPIError(account.ErrEmptyPassword, "could not create doctor")
	}

	hashed, err := account.HashPassword(request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}

	doctorID, err := a.store.CreateDoctor(ctx.Request.Context(), request.Email, hashed, request.Name)
	if err != nil {
		log.Error().Err(err).Str("email", request.Email).Msg("could not create doctor")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create doctor"}
	}

	token, err := middleware.GenerateJWT(doctorID, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return packets.TokenResponse{Token: token}, nil
}

// POST /api/doctor/auth/login
func (a *AccountManager) doctorLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	found, err := a.store.GetDoctorByEmail(ctx.Request.Context(), request.Email)
	if err != nil || found == nil || !account.CheckPassword(found.HashedPassword, request.Password) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	token, err := middleware.GenerateJWT(found.ID, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return packets.TokenResponse{Token: token}, nil
}

// GET /api/doctor/auth/current_profile
func (a *AccountManager) getCurrentProfile(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	return packets.ProfileResponse{
		ID:        doctor.ID,
		Email:     doctor.Email,
		Name:      doctor.Name,
		CreatedAt: doctor.CreatedAt.Format(time.RFC3339),
		UpdatedAt: doctor.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// PUT /api/doctor/auth/password
func (a *AccountManager) changePassword(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	var request packets.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := a.accounts.ChangePassword(ctx.Request.Context(), doctor.ID, request.Password); err != nil {
		return nil, toAPIError(err, "could not change password")
	}
	closeDialog(a.registry, request.SessionID, doctor.ID)

	return packets.MessageResponse{Message: view.Success("Password changed")}, nil
}

// POST /api/doctor/auth/logout
func (a *AccountManager) logout(ctx *gin.Context, doctor *model.Doctor) (any, *api.APIError) {
	token, ttl := middleware.CurrentToken(ctx)
	if err := a.accounts.Logout(ctx.Request.Context(), doctor.ID, token, ttl); err != nil {
		return nil, toAPIError(err, "could not log out")
	}
	return packets.LogoutResponse{Redirect: account.HomePath}, nil
}

// closeDialog hides the open dialog of the session that saved it. Saves
// that arrive without a session still succeed.
func closeDialog(registry *session.Registry, sessionID string, doctorID int) {
	if registry == nil || sessionID == "" {
		return
	}
	if sess, err := registry.Get(sessionID, doctorID); err == nil {
		sess.Modal.Close()
	}
}
