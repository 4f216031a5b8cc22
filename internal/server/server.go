// Package server exposes the codec, renderer and history store over HTTP.
package server

import (
	"time"

	"github.com/danmuck/thaiqr/internal/observability"
	"github.com/danmuck/thaiqr/internal/qr"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const Version = "0.1.0"

type Server struct {
	Name     string
	Addr     string
	Appeared time.Time

	svc    *qr.Service
	router *gin.Engine
}

// Appear builds the gin engine with recovery, request logging, metrics
// and CORS middleware. Routes are attached by RegisterRoutes.
func Appear(name, addr string, corsOrigins []string, svc *qr.Service) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger, name))
	r.Use(observability.RequestMetricsMiddleware(name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		Name:     name,
		Addr:     addr,
		Appeared: time.Now(),
		svc:      svc,
		router:   r,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

// Serve registers routes and blocks serving Addr.
func (s *Server) Serve() error {
	s.RegisterRoutes()
	log.Info().Str("name", s.Name).Str("addr", s.Addr).Msg("qrd listening")
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
