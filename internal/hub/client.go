// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hub implements the client for the upstream model catalog API
// (HuggingFace Hub wire format).
package hub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/traylinx/hubproxy/internal/catalog"
	"github.com/traylinx/hubproxy/internal/filter"
)

// Client talks to the upstream catalog API. It carries no retry or backoff
// logic; failures propagate to the caller.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a catalog client for the given base URL, e.g.
// "https://huggingface.co/api". An empty token disables authentication.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search lists models from the upstream catalog, bounded by limit and
// narrowed by the pushable filter parameters.
func (c *Client) Search(ctx context.Context, limit int, params filter.HubParams) ([]catalog.Model, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("full", "true")
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Author != "" {
		query.Set("author", params.Author)
	}
	for _, tag := range params.Tags {
		query.Add("filter", tag)
	}

	log.WithField("limit", limit).Debug("Searching upstream models")

	body, err := c.get(ctx, c.baseURL+"/models?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var models []catalog.Model
	gjson.ParseBytes(body).ForEach(func(_, raw gjson.Result) bool {
		models = append(models, modelFromRaw(raw))
		return true
	})
	return models, nil
}

// Get fetches a single model by its repository ID. The ID may contain "/".
func (c *Client) Get(ctx context.Context, id string) (catalog.Model, error) {
	log.WithField("repo_id", id).Debug("Fetching upstream model details")

	body, err := c.get(ctx, c.baseURL+"/models/"+id)
	if err != nil {
		return catalog.Model{}, err
	}
	return modelFromRaw(gjson.ParseBytes(body)), nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "hubproxy/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream catalog returned status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// modelFromRaw maps one raw upstream record to a catalog record. Records
// upstream carry either "id" or the legacy "modelId"; "gated" is false, or
// the string "auto"/"manual" for gated repositories.
func modelFromRaw(raw gjson.Result) catalog.Model {
	id := raw.Get("id").String()
	if id == "" {
		id = raw.Get("modelId").String()
	}

	visibility := catalog.VisibilityPublic
	if raw.Get("private").Bool() {
		visibility = catalog.VisibilityPrivate
	}

	var tags []string
	for _, tag := range raw.Get("tags").Array() {
		tags = append(tags, tag.String())
	}
	if tags == nil {
		tags = []string{}
	}

	return catalog.Model{
		ID:           id,
		Name:         catalog.NameFromID(id),
		Visibility:   visibility,
		Gated:        gatedFromRaw(raw.Get("gated")),
		Tags:         tags,
		Cached:       false,
		LastModified: raw.Get("lastModified").String(),
		Downloads:    raw.Get("downloads").Int(),
		Likes:        raw.Get("likes").Int(),
	}
}

func gatedFromRaw(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.String:
		s := v.String()
		return s == "auto" || s == "manual"
	default:
		return false
	}
}
