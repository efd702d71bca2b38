package frontend

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopmesh/shopmesh/common/logger"
	"github.com/shopmesh/shopmesh/internal/frontend/session"
)

const (
	sessionCookie     = "shopmesh_session"
	sessionContextKey = "shopmesh.session"
	sessionMaxAge     = 30 * 24 * time.Hour
)

// sessionMiddleware resolves the browser session from the cookie, creating a
// blank one at first contact, and writes it back after the handler ran.
// Concurrent requests for the same session resolve last-writer-wins.
func (s *Server) sessionMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		id = uuid.NewString()
		c.SetCookie(sessionCookie, id, int(sessionMaxAge.Seconds()), "/", "", false, true)
	}

	sess, err := s.store.Load(ctx, id)
	if err != nil {
		s.log.Warn("failed to load session, starting blank", logger.Error(err))
	}
	if sess == nil {
		sess = session.New(id)
	}
	c.Set(sessionContextKey, sess)

	c.Next()

	if err := s.store.Save(ctx, sess); err != nil {
		s.log.Error("failed to save session", logger.Error(err))
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}
