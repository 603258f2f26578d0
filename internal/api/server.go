// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package api exposes the HTTP surface of the proxy: health probes, the
// reconciled model listing, and single-model lookup.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/traylinx/hubproxy/internal/catalog"
)

// Inventory is the reconciliation engine consumed by the HTTP layer.
type Inventory interface {
	Query(ctx context.Context, filterString string, limit, offset int) ([]catalog.Model, error)
	GetOne(ctx context.Context, id string) (catalog.Model, error)
}

// ListResponse is the envelope of the model listing endpoint. Status is
// "success" or "error"; Data is null exactly when Status is "error".
type ListResponse struct {
	Status string          `json:"status"`
	Data   []catalog.Model `json:"data"`
}

// ModelResponse is the envelope of the single-model endpoint.
type ModelResponse struct {
	Status string         `json:"status"`
	Data   *catalog.Model `json:"data"`
}

// Server serves the proxy API over HTTP.
type Server struct {
	engine Inventory
	router *gin.Engine
}

// NewServer builds the HTTP server around the given engine.
func NewServer(engine Inventory) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	s := &Server{engine: engine, router: router}

	router.GET("/", s.handleHealth)
	router.GET("/health", s.handleHealth)
	router.GET("/healthz", s.handleHealth)
	router.GET("/outputs", s.handleListOutputs)
	router.GET("/outputs/*repo", s.handleOutputDetail)

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, host string, port int) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("API server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// requestID assigns every request a short correlation ID consumed by the log
// formatter. An incoming X-Request-ID wins over a generated one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()[:8]
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func requestLogger(c *gin.Context) *log.Entry {
	return log.WithField("request_id", c.GetString("request_id"))
}
