package userservice

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/shopmesh/shopmesh/common/logger"
	"github.com/shopmesh/shopmesh/internal/model"
)

const userContextKey = "shopmesh.user"

type Server struct {
	log   *logger.Logger
	store *Store
}

func NewServer(log *logger.Logger, store *Store) *Server {
	return &Server{log: log, store: store}
}

// Register mounts the identity routes. The static /all route and the
// /:username/exists probe coexist on the same segment.
func (s *Server) Register(r *gin.Engine) {
	api := r.Group("/api/user")

	api.POST("/login", s.login)
	api.POST("/create", s.create)
	api.GET("/all", s.all)
	api.GET("/:username/exists", s.exists)
	api.GET("/ping", s.ping)

	authed := api.Group("")
	authed.Use(s.requireAPIKey)
	authed.GET("/", s.current)
	authed.POST("/logout", s.logout)
}

// requireAPIKey resolves the caller from the Authorization header. Keys are
// presented as "Basic <key>", the same shape the storefront forwards.
func (s *Server) requireAPIKey(c *gin.Context) {
	key := apiKeyFrom(c)
	if key == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not logged in"})
		return
	}

	user, err := s.store.ByAPIKey(key)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not logged in"})
		return
	}

	c.Set(userContextKey, user)
	c.Next()
}

func apiKeyFrom(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return ""
	}
	return strings.TrimPrefix(auth, "Basic ")
}

func (s *Server) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	key, err := s.store.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not logged in"})
			return
		}
		s.log.Error("issuing api key", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "api_key": key})
}

// create registers an account. Duplicates answer 409 with the colliding
// field's name so the storefront can tell the user which one to change.
func (s *Server) create(c *gin.Context) {
	acc := NewAccount{
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
	}
	if acc.Username == "" || acc.Email == "" || acc.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username, email and password are required"})
		return
	}

	if _, err := s.store.Create(acc); err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "username"})
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "email"})
		default:
			s.log.Error("creating account", logger.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registration successful"})
}

func (s *Server) current(c *gin.Context) {
	user := c.MustGet(userContextKey).(model.User)
	c.JSON(http.StatusOK, gin.H{"result": user})
}

func (s *Server) all(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"result": s.store.All()})
}

func (s *Server) exists(c *gin.Context) {
	if !s.store.Exists(c.Param("username")) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true})
}

func (s *Server) logout(c *gin.Context) {
	s.store.RevokeKey(apiKeyFrom(c))
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

func (s *Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "healthy")
}
