package server

import (
	"ctchen222/blog-api/internal/api/controller"
	"ctchen222/blog-api/internal/api/middleware"
	"ctchen222/blog-api/internal/api/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server owns the gin engine and the route table of the blog API.
type Server struct {
	engine         *gin.Engine
	userController *controller.UserController
	postController *controller.PostController
}

func NewServer(userController *controller.UserController, postController *controller.PostController) *Server {
	s := &Server{
		engine:         gin.New(),
		userController: userController,
		postController: postController,
	}
	s.RegisterHandlers()
	return s
}

// Engine returns the http.Handler to serve.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterHandlers() {
	s.engine.Use(gin.Recovery(), middleware.Tracing(), middleware.Logging())
	s.engine.HandleMethodNotAllowed = true

	s.engine.GET("/healthz", func(c *gin.Context) {
		response.SuccessResponse(c, gin.H{"status": "ok"})
	})

	s.engine.POST("/users", s.userController.Register)
	s.engine.POST("/auth", s.userController.Authenticate)

	posts := s.engine.Group("/posts")
	{
		posts.GET("", s.postController.List)
		posts.POST("", s.postController.Create)
		posts.GET("/:postId", s.postController.Get)
		posts.PUT("/:postId", s.postController.Update)
		posts.DELETE("/:postId", s.postController.Delete)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		response.ErrorResponse(c, http.StatusNotFound, "route not found")
	})
	s.engine.NoMethod(func(c *gin.Context) {
		response.ErrorResponse(c, http.StatusMethodNotAllowed, "method not allowed")
	})
}
