// Package server exposes the compiled statistics over a small HTTP API
// and serves the generated dashboards.
package server

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"ukstats/internal/config"
	"ukstats/internal/model"
	"ukstats/internal/rates"
	"ukstats/internal/store"
)

// Server is the HTTP API over the compiled store.
type Server struct {
	router  *gin.Engine
	store   *store.Store
	rates   *rates.Calculator
	dataDir string
}

// NewServer creates the server over an open store.
func NewServer(cfg *config.AppConfig, st *store.Store, dataDir string) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:  gin.Default(),
		store:   st,
		rates:   rates.NewCalculator(st),
		dataDir: dataDir,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.GET("/status", s.handleStatus)
		api.GET("/eras", s.handleEras)
		api.GET("/categories", s.handleCategories)
		api.GET("/assignments", s.handleAssignments)
		api.GET("/yearly-rates", s.handleYearlyRates)
		api.GET("/age-group-rates", s.handleAgeGroupRates)
		api.GET("/mortality", s.handleMortality)
		api.GET("/runs", s.handleRuns)
	}

	s.router.Static("/dashboards", filepath.Join(s.dataDir, "dashboards"))
	s.router.Static("/outputs", filepath.Join(s.dataDir, "outputs"))
}

func (s *Server) handleStatus(c *gin.Context) {
	mortality, err := s.store.CountMortality()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	population, err := s.store.CountPopulation()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	years, err := s.store.MortalityYears()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := gin.H{
		"mortality_rows":  mortality,
		"population_rows": population,
	}
	if len(years) > 0 {
		status["year_from"] = years[0]
		status["year_to"] = years[len(years)-1]
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleEras(c *gin.Context) {
	c.JSON(http.StatusOK, model.EraRanges)
}

func (s *Server) handleCategories(c *gin.Context) {
	counts, err := s.store.GetCategoryCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (s *Server) handleAssignments(c *gin.Context) {
	assignments, err := s.store.GetAssignments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (s *Server) handleYearlyRates(c *gin.Context) {
	yearly, err := s.rates.YearlyRates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, yearly)
}

func (s *Server) handleAgeGroupRates(c *gin.Context) {
	ageGroup, err := s.rates.AgeGroupRates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ageGroup)
}

func (s *Server) handleMortality(c *gin.Context) {
	opts := store.MortalityQueryOptions{Limit: 1000}
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		opts.Year = &year
	}
	if v := c.Query("sex"); v != "" {
		opts.Sex = &v
	}
	if v := c.Query("cause"); v != "" {
		opts.Cause = &v
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		opts.Limit = limit
	}

	records, err := s.store.GetMortality(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) handleRuns(c *gin.Context) {
	logs, err := s.store.GetRecentRunLogs(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
