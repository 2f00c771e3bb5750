package delivery

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"lms-backend/internal/apperror"
	"lms-backend/internal/user/usecase"
)

// AuthMiddleware gates a route on a valid access token backed by a live
// session. The resolved user snapshot is attached to the request context.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, err := c.Cookie(accessTokenCookie)
		if err != nil || accessToken == "" {
			apperror.Fail(c, apperror.Unauthorized("login first to access this resource"))
			return
		}

		user, err := authUsecase.Authenticate(c.Request.Context(), accessToken)
		if err != nil {
			apperror.Fail(c, err)
			return
		}

		setCurrentUser(c, *user)
		c.Next()
	}
}

// RoleMiddleware allows only the listed roles past. It must run after
// AuthMiddleware; a request without an identity always fails.
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperror.Fail(c, apperror.Forbidden("role is not allowed to access this resource"))
			return
		}
		if _, ok := allowed[user.Role]; !ok {
			apperror.Fail(c, apperror.Forbidden(fmt.Sprintf("role (%s) is not allowed to access this resource", user.Role)))
			return
		}
		c.Next()
	}
}
