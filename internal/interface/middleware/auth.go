package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vidtube/backend/pkg/apperr"
	"github.com/vidtube/backend/pkg/helpers"
	"github.com/vidtube/backend/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "userName"
	CtxEmailKey    = "userEmail"
)

// Auth validates the access token from the accessToken cookie or the
// Authorization: Bearer header and injects the caller identity into the
// context. Fails closed on any malformed, expired, or mis-signed token.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.Abort(c, apperr.New(apperr.Unauthorized, "missing access token"))
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, apperr.New(apperr.Unauthorized, "invalid access token"))
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUsernameKey, claims.Username)
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
