package middleware

import (
	"net/http"
	"strings"

	"rugquotes/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorContextKey = "actor"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Unauthorized", http.StatusUnauthorized)

// RequireAuth validates the Bearer token on admin routes and records the
// acting staff member's identity for audit attribution. Tokens are HMAC
// signed with the shared secret; the email claim names the actor.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if email, _ := claims["email"].(string); email != "" {
				c.Set(actorContextKey, email)
			}
		}
		c.Next()
	}
}

// Actor returns the authenticated staff identity, defaulting to "Admin" when
// the token carried no email claim.
func Actor(c *gin.Context) string {
	if v, ok := c.Get(actorContextKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "Admin"
}
