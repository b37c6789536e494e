package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/minhnhutZzz/alotra-storefront/middleware"
	"github.com/minhnhutZzz/alotra-storefront/models"
)

const tokenTTL = 24 * time.Hour

// POST /api/session
//
// Hands the browser its anonymous identity: the session id minted by the
// middleware plus a short-lived JWT the backend accepts for correlating an
// anonymous cart with a later login.
func IssueSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := middleware.SessionID(c)

		token, err := issueSessionToken(sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Token generation failed"))
			return
		}

		c.JSON(http.StatusOK, models.Ok(gin.H{
			"sessionId": sessionID,
			"token":     token,
			"expiresAt": time.Now().Add(tokenTTL),
		}))
	}
}

func issueSessionToken(id string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": id,
		"role":    "guest",
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
