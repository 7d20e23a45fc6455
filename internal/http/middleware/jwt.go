package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

const TokenTTL = 72 * time.Hour

// DoctorLoader is the part of db.Store the middleware needs.
type DoctorLoader interface {
	GetDoctorByID(ctx context.Context, id int) (*model.Doctor, error)
}

// Denylist answers whether a token was revoked by logout.
type Denylist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// signs a token embedding doctorID in the "sub" claim.
func GenerateJWT(doctorID int, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": doctorID,
		"exp": time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// verifies the JWT and returns the doctor ID and expiry.
func parseToken(tokenString, secret string) (int, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, time.Time{}, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, time.Time{}, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, time.Time{}, errors.New("invalid sub claim")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return 0, time.Time{}, errors.New("invalid exp claim")
	}
	return int(sub), time.Unix(int64(exp), 0), nil
}

// checks "Authorization: Bearer <token>", verifies it, loads the doctor, and
// sets "currentDoctor" in context.
func JWTMiddleware(secret string, store DoctorLoader, denylist Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth header"})
			return
		}

		doctorID, exp, err := parseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if denylist != nil {
			revoked, err := denylist.IsRevoked(c.Request.Context(), parts[1])
			if err != nil {
				log.Error().Err(err).Int("doctor_id", doctorID).Msg("deny-list lookup failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
				return
			}
		}

		doctor, err := store.GetDoctorByID(c.Request.Context(), doctorID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "doctor not found"})
			return
		}
		c.Set(currentDoctorKey, doctor)
		c.Set(tokenKey, parts[1])
		c.Set(tokenExpiryKey, exp)
		c.Next()
	}
}
