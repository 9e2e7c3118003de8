// Package server is a stand-in for the remote /foods collection used during
// development and in end-to-end tests.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gorestaurant/internal/database"
	"gorestaurant/internal/models"
	"gorestaurant/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store represents the food plate storage
type Store interface {
	ListFoods(ctx context.Context) ([]models.FoodPlate, error)
	CreateFood(ctx context.Context, plate models.FoodPlate) (models.FoodPlate, error)
	UpdateFood(ctx context.Context, id uint, plate models.FoodPlate) (models.FoodPlate, error)
	DeleteFood(ctx context.Context, id uint) error
}

// Server serves the /foods resource
type Server struct {
	Router  *gin.Engine
	store   Store
	log     zerolog.Logger
	monitor *monitoring.Monitor
}

// New creates a server with its routes configured
func New(store Store, logger zerolog.Logger, monitor *monitoring.Monitor) *Server {
	s := &Server{
		Router:  gin.New(),
		store:   store,
		log:     logger.With().Str("component", "server").Logger(),
		monitor: monitor,
	}

	s.Router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "uptime_seconds": s.monitor.Uptime().Seconds()})
	})

	foods := s.Router.Group("/foods")
	{
		foods.GET("", s.ListFoods)
		foods.POST("", s.CreateFood)
		foods.PUT("/:id", s.UpdateFood)
		foods.DELETE("/:id", s.DeleteFood)
	}
}

// requestLogger logs each request and records its metrics
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.monitor.ObserveRequest(c.Request.Method, route, c.Writer.Status(), elapsed)

		s.log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", elapsed).
			Msg("request")
	}
}

// ListFoods returns the whole collection
func (s *Server) ListFoods(c *gin.Context) {
	foods, err := s.store.ListFoods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, foods)
}

// CreateFood stores a new plate and returns it with its id
func (s *Server) CreateFood(c *gin.Context) {
	var plate models.FoodPlate
	if err := c.ShouldBindJSON(&plate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.store.CreateFood(c.Request.Context(), plate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateFood replaces the plate at /foods/:id
func (s *Server) UpdateFood(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var plate models.FoodPlate
	if err := c.ShouldBindJSON(&plate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.store.UpdateFood(c.Request.Context(), id, plate)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteFood removes the plate at /foods/:id
func (s *Server) DeleteFood(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.store.DeleteFood(c.Request.Context(), id); err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) storeError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return 0, false
	}
	return uint(id), true
}
