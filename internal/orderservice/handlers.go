package orderservice

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/shopmesh/shopmesh/common/headers"
	"github.com/shopmesh/shopmesh/common/logger"
)

const credentialContextKey = "shopmesh.credential"

type Server struct {
	log     *logger.Logger
	store   Store
	catalog Catalog
}

func NewServer(log *logger.Logger, store Store, catalog Catalog) *Server {
	return &Server{log: log, store: store, catalog: catalog}
}

func (s *Server) Register(r *gin.Engine) {
	api := r.Group("/api/order")
	api.GET("/ping", s.ping)

	authed := api.Group("")
	authed.Use(requireCredential)
	authed.GET("/", s.fetch)
	authed.POST("/add-item", s.addItem)
	authed.POST("/checkout", s.checkout)
}

// requireCredential extracts the caller's API key from the Authorization
// header. The order service does not validate the key against the user
// service; it only uses it as the cart's identity.
func requireCredential(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	key := strings.TrimPrefix(auth, "Basic ")
	if auth == "" || key == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not logged in"})
		return
	}
	c.Set(credentialContextKey, key)
	c.Next()
}

func credentialFrom(c *gin.Context) string {
	return c.MustGet(credentialContextKey).(string)
}

func (s *Server) fetch(c *gin.Context) {
	order, err := s.store.Get(c.Request.Context(), credentialFrom(c))
	if err != nil {
		s.log.Error("loading order", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "order lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": order})
}

// addItem puts qty units of a product in the cart. The price comes from the
// product service at add time, so the stored total is a sum of the prices in
// effect when each item went in.
func (s *Server) addItem(c *gin.Context) {
	ctx := c.Request.Context()
	credential := credentialFrom(c)

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

	product, err := s.catalog.Product(ctx, productID, headers.FromContext(ctx))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownProduct):
			c.JSON(http.StatusNotFound, gin.H{"message": "Cannot find product"})
		case errors.Is(err, ErrCatalogUnavailable):
			s.log.Warn("product service unreachable", logger.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "product lookup failed"})
		default:
			s.log.Error("product lookup", logger.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"message": "product lookup failed"})
		}
		return
	}

	order, err := s.store.Get(ctx, credential)
	if err != nil {
		s.log.Error("loading order", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "order lookup failed"})
		return
	}

	order.Items[product.ID] += qty
	order.Total += product.Price * float64(qty)

	if err := s.store.Save(ctx, credential, order); err != nil {
		s.log.Error("saving order", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "order update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": order})
}

// checkout closes the open order. An empty cart cannot be placed.
func (s *Server) checkout(c *gin.Context) {
	ctx := c.Request.Context()
	credential := credentialFrom(c)

	order, err := s.store.Get(ctx, credential)
	if err != nil {
		s.log.Error("loading order", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "order lookup failed"})
		return
	}
	if order.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "order is empty"})
		return
	}

	if err := s.store.Delete(ctx, credential); err != nil {
		s.log.Error("closing order", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "checkout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": order, "message": "order placed"})
}

func (s *Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "healthy")
}
