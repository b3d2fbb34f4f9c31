package server

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/galeri/internal/actorcontext"
	admindomain "github.com/smallbiznis/galeri/internal/adminreport/domain"
	identitydomain "github.com/smallbiznis/galeri/internal/identity/domain"
	"github.com/smallbiznis/galeri/internal/observability/logger"
	"go.uber.org/zap"
)

const sessionCookie = "galeri_session"

// ErrorHandlingMiddleware renders the last handler error as a JSON body with
// a stable type string.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		lastErr := c.Errors.Last()
		if lastErr == nil || c.Writer.Written() {
			return
		}

		status, kind, message := mapError(lastErr.Err)
		if status >= 500 {
			logger.FromContext(c.Request.Context()).Error("request failed",
				zap.String("type", kind),
				zap.Error(lastErr.Err),
			)
		}
		c.JSON(status, gin.H{
			"type":    kind,
			"message": message,
		})
	}
}

// SessionRequired resolves the session token into an actor and stores it on
// the request context. Tokens arrive via the X-Session-Token header or the
// session cookie.
func SessionRequired(identity identitydomain.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("X-Session-Token"))
		if token == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				token = cookie
			}
		}
		if token == "" {
			abort(c, identitydomain.ErrUnauthenticated)
			return
		}

		actor, err := identity.Authenticate(c.Request.Context(), token)
		if err != nil {
			abort(c, err)
			return
		}

		c.Request = c.Request.WithContext(actorcontext.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// AdminRequired rejects non-administrator actors before the handler runs.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorcontext.ActorFromContext(c.Request.Context())
		if !ok {
			abort(c, identitydomain.ErrUnauthenticated)
			return
		}
		if !actor.IsAdmin() {
			abort(c, admindomain.ErrForbidden)
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func badRequest(c *gin.Context, err error) {
	abort(c, fmt.Errorf("%w: %v", errBadRequest, err))
}
