package gin

import (
	"github.com/gin-gonic/gin"

	"github.com/shopmesh/shopmesh/common/headers"
)

// HeaderPropagationMiddleware extracts the forwarded allow-list headers from
// the inbound request, mirrors them onto this service's own response, and
// stores them in the request context so outbound calls can chain them to the
// next hop.
func HeaderPropagationMiddleware(c *gin.Context) {
	fwd := headers.Extract(c.Request.Header)
	fwd.Apply(c.Writer.Header())

	ctx := headers.ContextWithForwarded(c.Request.Context(), fwd)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
