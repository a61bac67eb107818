package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func isNotFound(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}

// AuthMiddleware validates the bearer credential against the identity
// provider and threads the resolved identity through typed context
// keys. The local directory record, when present, is attached as well
// and is the sole authority for the caller's role; the token's role
// claim is never consulted.
//
// A valid token whose subject has no directory record yet is still let
// through: the profile-completion endpoint is exactly the call that
// creates that record. Role-gated handlers reject such callers with a
// 403 because no role is attached.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, userUC domain.UserUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				// HS256 - Use Secret
				if cfg.JWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but AUTH_JWT_SECRET is not configured")
				}
				return []byte(cfg.JWTSecret), nil
			}

			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				// RS256 - Use JWKS
				return jwksProvider.KeyFunc(token)
			}

			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			logger.Log.Warn("Token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims")
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Token has no subject")
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)
		firstName, _ := claims["given_name"].(string)
		lastName, _ := claims["family_name"].(string)

		c.Set(string(domain.KeySubjectID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyFirstName), firstName)
		c.Set(string(domain.KeyLastName), lastName)

		// Role comes from the directory record, never the token. A
		// missing record is expected before profile completion; any
		// other lookup failure is a store problem and must not pass
		// for "no role" (it would turn an outage into 403s).
		user, err := userUC.GetBySubject(c.Request.Context(), sub)
		switch {
		case err == nil && user != nil:
			c.Set(string(domain.KeyUser), user)
			c.Set(string(domain.KeyUserID), user.ID)
			c.Set(string(domain.KeyUserRole), user.Role)
		case err != nil && !isNotFound(err):
			logger.Log.Error("Directory lookup failed", "error", err, "subject", sub)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
