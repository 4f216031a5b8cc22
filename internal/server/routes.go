package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danmuck/thaiqr/internal/history"
	"github.com/danmuck/thaiqr/internal/protocol"
	"github.com/danmuck/thaiqr/internal/qr"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type decodeRequest struct {
	Payload string `json:"payload"`
	Source  string `json:"source"`
}

type decodeResponse struct {
	Data          *protocol.Data `json:"data"`
	ChecksumValid bool           `json:"checksumValid"`
	ChecksumError string         `json:"checksumError,omitempty"`
	HistoryID     string         `json:"historyId,omitempty"`
	UnknownTags   []string       `json:"unknownTags,omitempty"`
}

type encodeResponse struct {
	QRString    string `json:"qrString"`
	QRCodeImage string `json:"qrCodeImage,omitempty"`
}

func (s *Server) RegisterRoutes() {
	r := s.router

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": Version,
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   s.svc != nil,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": Version,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/decode", s.handleDecode)
	r.POST("/encode", s.handleEncode)
	r.POST("/validate", func(c *gin.Context) {
		var in protocol.GeneratorInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		msgs := protocol.Validate(in)
		if msgs == nil {
			msgs = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"valid": len(msgs) == 0, "errors": msgs})
	})
	r.GET("/sample", func(c *gin.Context) {
		c.JSON(http.StatusOK, protocol.SampleInput())
	})

	r.GET("/history", func(c *gin.Context) {
		store, ok := s.historyStore(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": store.List(), "limit": store.Limit()})
	})
	r.GET("/history/:id", func(c *gin.Context) {
		store, ok := s.historyStore(c)
		if !ok {
			return
		}
		item, found := store.Get(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "history item not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	})
	r.DELETE("/history/:id", func(c *gin.Context) {
		store, ok := s.historyStore(c)
		if !ok {
			return
		}
		if !store.Remove(c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "history item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.DELETE("/history", func(c *gin.Context) {
		store, ok := s.historyStore(c)
		if !ok {
			return
		}
		store.Clear()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) handleDecode(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	source, err := history.ParseSource(req.Source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.svc.Scan(source, req.Payload)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, protocol.ErrNoFields) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	out := decodeResponse{Data: res.Data, ChecksumValid: res.ChecksumValid, UnknownTags: res.UnknownTags}
	if res.ChecksumError != nil {
		out.ChecksumError = res.ChecksumError.Error()
	}
	if res.Item != nil {
		out.HistoryID = res.Item.ID
	}
	c.JSON(http.StatusOK, out)
}

// handleEncode renders the symbol unless the image query parameter is
// false.
func (s *Server) handleEncode(c *gin.Context) {
	var in protocol.GeneratorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	withImage := true
	if raw := c.Query("image"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image must be a boolean"})
			return
		}
		withImage = v
	}

	if !withImage {
		payload, err := s.svc.Encode(in)
		if err != nil {
			respondGenerationError(c, err)
			return
		}
		c.JSON(http.StatusOK, encodeResponse{QRString: payload})
		return
	}

	res, err := s.svc.Generate(c.Request.Context(), in)
	if err != nil {
		respondGenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, encodeResponse{QRString: res.QRString, QRCodeImage: res.Image.DataURL()})
}

func respondGenerationError(c *gin.Context, err error) {
	var verr *protocol.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "errors": verr.Messages})
		return
	}
	var gerr *qr.GenerationError
	if errors.As(err, &gerr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gerr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *Server) historyStore(c *gin.Context) (*history.Store, bool) {
	if s.svc == nil || s.svc.History == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history disabled"})
		return nil, false
	}
	return s.svc.History, true
}
