package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

const (
	currentDoctorKey = "currentDoctor"
	tokenKey         = "token"
	tokenExpiryKey   = "tokenExpiry"
)

// is returned when email/password don't match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// retrieves *model.Doctor from Gin context (after JWTMiddleware has run).
func GetCurrentDoctor(c *gin.Context) (*model.Doctor, bool) {
	d, exists := c.Get(currentDoctorKey)
	if !exists {
		return nil, false
	}
	doctor, ok := d.(*model.Doctor)
	return doctor, ok
}

// returns the raw bearer token of the request and how long it stays valid.
func CurrentToken(c *gin.Context) (string, time.Duration) {
	token := c.GetString(tokenKey)
	exp := c.GetTime(tokenExpiryKey)
	if token == "" || exp.IsZero() {
		return "", 0
	}
	return token, time.Until(exp)
}
