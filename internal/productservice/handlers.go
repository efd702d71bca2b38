package productservice

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopmesh/shopmesh/common/logger"
)

type Server struct {
	log     *logger.Logger
	catalog *Catalog
}

func NewServer(log *logger.Logger, catalog *Catalog) *Server {
	return &Server{log: log, catalog: catalog}
}

func (s *Server) Register(r *gin.Engine) {
	api := r.Group("/api/product")

	api.GET("/all", s.all)
	api.GET("/:id", s.product)
	api.GET("/ping", s.ping)
}

func (s *Server) all(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": s.catalog.All()})
}

func (s *Server) product(c *gin.Context) {
	product, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cannot find product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": product})
}

func (s *Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "healthy")
}
