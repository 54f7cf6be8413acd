// Package http serves the collaborator contract over the synthetic
// dataset, so the engine can run end-to-end without the real backend.
package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/contract-explorer/internal/cache"
	"github.com/example/contract-explorer/internal/dataset"
	"github.com/example/contract-explorer/internal/domain"
	"github.com/example/contract-explorer/internal/models"
	"github.com/example/contract-explorer/internal/query"
)

type Server struct {
	R       *gin.Engine
	Data    *dataset.Store
	Cache   *cache.ResponseCache
	Logger  *zap.Logger
	perPage int
}

// NewServer wires the router, dataset, response cache, and middleware.
func NewServer(data *dataset.Store, respCache *cache.ResponseCache, logger *zap.Logger, corsOrigin string) *Server {
	g := gin.New()

	// Request logging
	g.Use(func(cn *gin.Context) {
		start := time.Now()
		cn.Next()
		logger.Info("http_request",
			zap.String("method", cn.Request.Method),
			zap.String("path", cn.Request.URL.Path),
			zap.Int("status", cn.Writer.Status()),
			zap.String("request_id", cn.GetHeader("X-Request-ID")),
			zap.Duration("latency", time.Since(start)),
		)
	})

	g.Use(gin.Recovery())

	// CORS
	g.Use(func(cn *gin.Context) {
		origin := cn.GetHeader("Origin")
		cn.Writer.Header().Set("Vary", "Origin")
		cn.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		cn.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		cn.Writer.Header().Set("Access-Control-Max-Age", "86400")
		if corsOrigin == "*" {
			cn.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && origin == corsOrigin {
			cn.Writer.Header().Set("Access-Control-Allow-Origin", corsOrigin)
		}
		if cn.Request.Method == http.MethodOptions {
			cn.AbortWithStatus(http.StatusNoContent)
			return
		}
		cn.Next()
	})

	s := &Server{
		R:       g,
		Data:    data,
		Cache:   respCache,
		Logger:  logger,
		perPage: 25,
	}

	g.GET("/health", func(cn *gin.Context) { cn.JSON(http.StatusOK, gin.H{"ok": true}) })
	g.GET("/api/entities/:entity", s.getEntities)

	return s
}

// --- Helpers ---

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.APIError{Code: "bad_request", Message: msg})
}

func (s *Server) internalError(c *gin.Context, where string, err error) {
	s.Logger.Error("internal_error", zap.String("where", where), zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.APIError{Code: "internal_server_error", Message: "internal server error"})
}

func parseBounded(v string, def, min, max int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		return def
	}
	return n
}

// --- Handlers ---

func (s *Server) getEntities(c *gin.Context) {
	entRaw := strings.TrimSpace(c.Param("entity"))
	entity, ok := domain.ParseEntityType(entRaw)
	if !ok {
		s.badRequest(c, "invalid entity (use 'vendors', 'institutions' or 'trends')")
		return
	}

	// Filter params outside their domain fall back to unconstrained.
	filter := query.FilterState{}
	for _, field := range query.FilterFields() {
		if v := strings.TrimSpace(c.Query(field)); v != "" && query.ValidFieldValue(field, v) {
			filter[field] = v
		}
	}

	sortSpec := query.SortSpec{}
	if by := c.Query("sort_by"); query.ValidSortField(by) {
		if order, valid := domain.ParseSortOrder(c.Query("sort_order")); valid {
			sortSpec = query.SortSpec{Field: by, Order: order}
		}
	}

	req := query.PageRequest{
		Entity:   entity,
		Filter:   filter,
		Sort:     sortSpec,
		Page:     parseBounded(c.Query("page"), 1, 1, 100000),
		PageSize: parseBounded(c.Query("per_page"), s.perPage, 1, 200),
	}

	key := query.BuildKey(req)
	if page, hit := s.Cache.Get(key); hit {
		c.JSON(http.StatusOK, page)
		return
	}

	page, err := s.Data.Query(req)
	if err != nil {
		s.internalError(c, "Query", err)
		return
	}

	s.Cache.Set(key, page)
	c.JSON(http.StatusOK, page)
}
