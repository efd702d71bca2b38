// Package frontend is the web-facing storefront: it owns the browser
// sessions and fans requests out to the user, product and order services,
// chaining the forwarded trace/auth headers across every hop.
package frontend

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/shopmesh/shopmesh/common/headers"
	"github.com/shopmesh/shopmesh/common/logger"
	"github.com/shopmesh/shopmesh/internal/frontend/checkout"
	"github.com/shopmesh/shopmesh/internal/frontend/clients"
	"github.com/shopmesh/shopmesh/internal/frontend/session"
	"github.com/shopmesh/shopmesh/internal/model"
)

// ProductAPI, UserAPI and OrderAPI are the capability slices the handlers
// depend on, so tests can substitute fakes for the real service clients.
type ProductAPI interface {
	List(ctx context.Context, fwd headers.ForwardedHeaderSet) ([]model.Product, headers.ForwardedHeaderSet, error)
	Get(ctx context.Context, id string, fwd headers.ForwardedHeaderSet) (model.Product, headers.ForwardedHeaderSet, error)
}

type UserAPI interface {
	Login(ctx context.Context, username, password string, fwd headers.ForwardedHeaderSet) (string, headers.ForwardedHeaderSet, error)
	Current(ctx context.Context, credential string, fwd headers.ForwardedHeaderSet) (model.User, headers.ForwardedHeaderSet, error)
	Register(ctx context.Context, reg clients.Registration, fwd headers.ForwardedHeaderSet) (headers.ForwardedHeaderSet, error)
	Exists(ctx context.Context, username string, fwd headers.ForwardedHeaderSet) (bool, headers.ForwardedHeaderSet, error)
}

type OrderAPI interface {
	checkout.OrderService
	AddItem(ctx context.Context, credential, productID string, qty int, fwd headers.ForwardedHeaderSet) (model.OrderSnapshot, headers.ForwardedHeaderSet, error)
}

type Server struct {
	log        *logger.Logger
	store      session.Store
	products   ProductAPI
	users      UserAPI
	orders     OrderAPI
	reconciler *checkout.Reconciler
}

func NewServer(log *logger.Logger, store session.Store, products ProductAPI, users UserAPI, orders OrderAPI) *Server {
	return &Server{
		log:        log,
		store:      store,
		products:   products,
		users:      users,
		orders:     orders,
		reconciler: checkout.NewReconciler(orders, log),
	}
}

// Register mounts the storefront routes on the engine.
func (s *Server) Register(r *gin.Engine) {
	r.Use(s.sessionMiddleware)

	r.GET("/", s.home)
	r.GET("/product/:id", s.product)
	r.POST("/register", s.register)
	r.POST("/login", s.login)
	r.GET("/logout", s.logout)
	r.POST("/cart/add", s.addToCart)
	r.GET("/checkout", s.checkoutOrder)
	r.GET("/order/thank-you", s.thankYou)
	r.GET("/ping", s.ping)
}
