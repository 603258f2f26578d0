// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handleListOutputs serves the reconciled model listing. Engine failures
// surface as a structured error envelope with HTTP 200, never as a partial
// list.
func (s *Server) handleListOutputs(c *gin.Context) {
	logger := requestLogger(c)

	filterString := c.Query("filter")
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)

	logger.WithField("filter", filterString).Info("Fetching outputs list")

	models, err := s.engine.Query(c.Request.Context(), filterString, limit, offset)
	if err != nil {
		logger.WithField("error", err).Error("Failed to fetch outputs")
		c.JSON(http.StatusOK, ListResponse{Status: "error", Data: nil})
		return
	}

	c.JSON(http.StatusOK, ListResponse{Status: "success", Data: models})
}

// handleOutputDetail serves a single model. The repository ID may contain
// "/", so the route uses a catch-all parameter.
func (s *Server) handleOutputDetail(c *gin.Context) {
	logger := requestLogger(c)

	repoID := strings.TrimPrefix(c.Param("repo"), "/")
	if repoID == "" {
		c.JSON(http.StatusOK, ModelResponse{Status: "error", Data: nil})
		return
	}

	logger.WithField("repo_id", repoID).Info("Fetching output details")

	model, err := s.engine.GetOne(c.Request.Context(), repoID)
	if err != nil {
		logger.WithFields(map[string]interface{}{"repo_id": repoID, "error": err}).Error("Failed to fetch output details")
		c.JSON(http.StatusOK, ModelResponse{Status: "error", Data: nil})
		return
	}

	c.JSON(http.StatusOK, ModelResponse{Status: "success", Data: &model})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
