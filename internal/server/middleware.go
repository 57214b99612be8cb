package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/julianstephens/cotask/internal/engine"
	"github.com/julianstephens/cotask/internal/logger"
)

// principalKey is the gin context key holding the authenticated user id.
const principalKey = "userId"

// Claims is the expected shape of the bearer token. The subject claim is the
// user id; email and name feed the lazy user-row upsert.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// requirePrincipal validates the Authorization bearer token, upserts the user
// row, and stores the principal on the request context. Every failure is a
// uniform 401 with no detail about which check rejected the token.
func (s *Server) requirePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			s.abortUnauthorized(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.abortUnauthorized(c)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.config.JWTSecret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			s.abortUnauthorized(c)
			return
		}

		if err := s.engine.EnsureUser(claims.Subject, claims.Email, claims.Name); err != nil {
			logger.Error("User upsert failed", "user", claims.Subject, "error", err)
			writeError(c, err)
			c.Abort()
			return
		}

		c.Set(principalKey, claims.Subject)
		c.Next()
	}
}

func (s *Server) abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "unauthorized",
		"kind":  string(engine.KindUnauthorized),
	})
}

// principal returns the authenticated user id set by requirePrincipal.
func principal(c *gin.Context) string {
	return c.GetString(principalKey)
}
