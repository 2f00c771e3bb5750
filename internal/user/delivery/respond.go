package delivery

import (
	"github.com/gin-gonic/gin"

	"lms-backend/internal/user/domain"
)

const userContextKey = "user"

// CurrentUser returns the identity the auth middleware attached to the
// request.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}

func setCurrentUser(c *gin.Context, user domain.User) {
	c.Set(userContextKey, user)
}
