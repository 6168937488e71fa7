package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/adityapw/kuitansihub/internal/domain/user"
)

const (
	// CtxIdentity holds the resolved user.User for the request.
	CtxIdentity = "auth.identity"

	CtxRequestID = "request_id"
)

func SetIdentity(c *gin.Context, u user.User) {
	c.Set(CtxIdentity, u)
}

// IdentityFromContext returns the authenticated identity stashed by
// RequireAuth, so handlers don't need to know the magic key.
func IdentityFromContext(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return user.User{}, false
	}

	u, ok := v.(user.User)
	return u, ok
}
