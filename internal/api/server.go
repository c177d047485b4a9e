package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Arthur-so/Decentralized-scientific-journal/internal/journal"
	"github.com/Arthur-so/Decentralized-scientific-journal/internal/utils"
)

type Server struct {
	router *gin.Engine
	port   int
	server *http.Server
}

func NewServer(port int, engine *journal.Engine, logger *utils.JournalLogger) *Server {
	router := gin.Default()

	// Setup CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", callerHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if logger != nil {
		router.Use(auditMiddleware(logger))
	}

	// Create handler
	handler := NewHandler(engine)

	// Setup routes
	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Role registry
		roles := api.Group("/roles")
		{
			roles.POST("/editors", handler.AddEditor)
			roles.POST("/authors", handler.AddAuthor)
			roles.POST("/reviewers", handler.AddReviewer)
		}

		// Article lifecycle
		articles := api.Group("/articles")
		{
			articles.POST("", handler.SubmitArticle)
			articles.GET("", handler.GetPurchasedArticles)
			articles.GET("/:id", handler.GetArticle)
			articles.POST("/:id/reviewers", handler.DefineReviewer)
			articles.POST("/:id/reviews", handler.ReviewArticle)
			articles.POST("/:id/purchase", handler.BuyArticle)
		}

		// Read-only projections
		api.GET("/previews", handler.GetPreviews)
		api.GET("/categories/:name", handler.GetCategoryArticles)
		api.GET("/reviews/pending", handler.GetReviewerArticles)
		api.GET("/events", handler.GetEvents)
		api.GET("/stats", handler.GetStats)
	}

	return &Server{
		router: router,
		port:   port,
	}
}

func auditMiddleware(logger *utils.JournalLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.LogCall(c.GetHeader(callerHeader), c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
