package frontend

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopmesh/shopmesh/common/headers"
	"github.com/shopmesh/shopmesh/common/logger"
	"github.com/shopmesh/shopmesh/internal/frontend/checkout"
	"github.com/shopmesh/shopmesh/internal/frontend/clients"
	"github.com/shopmesh/shopmesh/internal/model"
)

// home lists the catalog. An unreachable product service degrades to an
// empty listing; this is the one deliberate fallback of that kind, every
// other call site surfaces the failure.
func (s *Server) home(c *gin.Context) {
	ctx := c.Request.Context()
	sess := sessionFrom(c)
	fwd := headers.FromContext(ctx)

	products, respFwd, err := s.products.List(ctx, fwd)
	switch {
	case clients.IsUnreachable(err):
		s.log.Warn("product service unreachable, serving empty catalog", logger.Error(err))
		products = []model.Product{}
	case err != nil:
		s.failUpstream(c, err)
		return
	default:
		respFwd.Apply(c.Writer.Header())
	}

	c.JSON(http.StatusOK, gin.H{
		"results": products,
		"order":   sess.CachedOrder(),
		"flashes": sess.PopFlashes(),
	})
}

// product serves a single catalog entry. No empty fallback here: an
// unreachable product service propagates as an upstream failure.
func (s *Server) product(c *gin.Context) {
	ctx := c.Request.Context()
	fwd := headers.FromContext(ctx)

	product, respFwd, err := s.products.Get(ctx, c.Param("id"), fwd)
	if err != nil {
		if remote, ok := asRemote(err); ok && remote.Status == http.StatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cannot find product"})
			return
		}
		s.failUpstream(c, err)
		return
	}

	respFwd.Apply(c.Writer.Header())
	c.JSON(http.StatusOK, gin.H{"result": product})
}

func (s *Server) register(c *gin.Context) {
	ctx := c.Request.Context()
	sess := sessionFrom(c)
	fwd := headers.FromContext(ctx)

	reg := clients.Registration{
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
	}
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username, email and password are required"})
		return
	}

	respFwd, err := s.users.Register(ctx, reg, fwd)
	if err != nil {
		if clients.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "username or email already registered"})
			return
		}
		s.failUpstream(c, err)
		return
	}

	sess.Flash("success", "Thanks for registering, please log in")
	s.redirect(c, checkout.RouteLogin, respFwd)
}

func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()
	sess := sessionFrom(c)
	fwd := headers.FromContext(ctx)

	if sess.IsAuthenticated() {
		s.redirect(c, checkout.RouteHome, fwd)
		return
	}

	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	apiKey, respFwd, err := s.users.Login(ctx, username, password, fwd)
	if err != nil {
		s.failUpstream(c, err)
		return
	}
	if apiKey == "" {
		// rejected credentials, not a system failure
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unable to login"})
		return
	}

	sess.SetCredential(apiKey)

	// Login succeeded at the identity boundary: the credential stays set
	// even if the follow-up user fetch fails.
	user, userFwd, err := s.users.Current(ctx, apiKey, respFwd)
	if err != nil {
		s.log.Warn("user fetch after login failed", logger.Error(err))
		sess.Flash("success", "Welcome back")
	} else {
		sess.User = &user
		respFwd = userFwd
		sess.Flash("success", "Welcome back, "+user.Username)
	}

	respFwd = s.reconciler.ReconcileAfterLogin(ctx, sess, respFwd)
	s.redirect(c, checkout.RouteHome, respFwd)
}

func (s *Server) logout(c *gin.Context) {
	sess := sessionFrom(c)
	sess.Clear()
	s.redirect(c, checkout.RouteHome, headers.FromContext(c.Request.Context()))
}

func (s *Server) addToCart(c *gin.Context) {
	ctx := c.Request.Context()
	sess := sessionFrom(c)
	fwd := headers.FromContext(ctx)

	credential, ok := sess.Credential()
	if !ok {
		sess.Flash("error", "Please login")
		s.redirect(c, checkout.RouteLogin, fwd)
		return
	}

	productID := c.PostForm("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "product_id is required"})
		return
	}
	qty, err := strconv.Atoi(c.DefaultPostForm("qty", "1"))
	if err != nil || qty < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "qty must be a positive integer"})
		return
	}

	order, respFwd, err := s.orders.AddItem(ctx, credential, productID, qty, fwd)
	if err != nil {
		s.failUpstream(c, err)
		return
	}

	// refresh the cache from the authoritative response, never patch it
	sess.SetCachedOrder(order)

	respFwd.Apply(c.Writer.Header())
	c.JSON(http.StatusOK, gin.H{"result": order})
}

func (s *Server) checkoutOrder(c *gin.Context) {
	ctx := c.Request.Context()
	sess := sessionFrom(c)
	fwd := headers.FromContext(ctx)

	respFwd, err := s.reconciler.Checkout(ctx, sess, fwd)
	if err != nil {
		if pre, ok := checkout.AsPrecondition(err); ok {
			sess.Flash("error", pre.Reason)
			s.redirect(c, pre.RedirectTo, respFwd)
			return
		}
		s.failUpstream(c, err)
		return
	}

	s.redirect(c, "/order/thank-you", respFwd)
}

func (s *Server) thankYou(c *gin.Context) {
	ctx := c.Request.Context()
	sess := sessionFrom(c)

	order, err := s.reconciler.ConfirmThankYou(ctx, sess)
	if err != nil {
		if pre, ok := checkout.AsPrecondition(err); ok {
			sess.Flash("error", pre.Reason)
			s.redirect(c, pre.RedirectTo, headers.FromContext(ctx))
			return
		}
		s.failUpstream(c, err)
		return
	}

	sess.Flash("success", "Thank you for your order")
	c.JSON(http.StatusOK, gin.H{
		"result":  order,
		"flashes": sess.PopFlashes(),
	})
}

func (s *Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "healthy")
}

// redirect applies the forwarded headers to the response and sends the
// browser to route. Precondition recovery and post-form flows both land here.
func (s *Server) redirect(c *gin.Context, route string, fwd headers.ForwardedHeaderSet) {
	fwd.Apply(c.Writer.Header())
	c.Redirect(http.StatusSeeOther, route)
}

// failUpstream reports a downstream failure without crashing the request:
// unreachable maps to 503, everything else to 502.
func (s *Server) failUpstream(c *gin.Context, err error) {
	_ = c.Error(err)
	status := http.StatusBadGateway
	if clients.IsUnreachable(err) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"message": "upstream service failure"})
}

func asRemote(err error) (*clients.RemoteError, bool) {
	var remote *clients.RemoteError
	ok := clients.AsRemote(err, &remote)
	return remote, ok
}
