package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"analogygen/internal/pkg/jwtutil"
	"analogygen/internal/transport/http/response"
)

const ContextEmailKey = "owner_email"

// AuthJWT requires a valid bearer token and stores the verified email claim
// in the request context. Missing header, wrong scheme, bad signature,
// malformed payload and expiry all map to the same 401.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.Email == "" {
			response.Error(c, 401, "token has no identity claim")
			c.Abort()
			return
		}

		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}
