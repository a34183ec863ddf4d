// Package server exposes the pipeline over a thin HTTP layer.
package server

import (
	"net/http"

	"github.com/devanksh/jobfinder/internal/pipeline"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	engine   *gin.Engine
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

func New(p *pipeline.Pipeline, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		pipeline: p,
		logger:   logger,
	}

	engine.GET("/", s.home)
	engine.POST("/find-jobs", s.findJobs)

	return s
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return s.engine.Run(addr)
}

// Handler exposes the underlying http.Handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "jobfinder is running"})
}

// findJobs accepts a resume upload and responds with the full report. An
// unreadable upload is the only client-visible failure; an unparseable
// document degrades to a default profile instead.
func (s *Server) findJobs(c *gin.Context) {
	header, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		s.logger.Warn("opening uploaded resume", zap.String("filename", header.Filename), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read resume file"})
		return
	}
	defer file.Close()

	s.logger.Info("processing resume",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size),
	)

	report := s.pipeline.RunReader(c.Request.Context(), file, header.Size, header.Filename)

	c.JSON(http.StatusOK, report)
}
