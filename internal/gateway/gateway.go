// Package gateway reads task batches from the task service through a keyed,
// invalidatable cache and tracks per-view request state.
package gateway

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"taskpanel/internal/logger"
	"taskpanel/internal/service"
	"taskpanel/internal/task"
)

// DefaultBatchLimit caps how many tasks one read fetches. Filtering and
// paging happen on this batch; tasks past the cap are reported, not shown.
const DefaultBatchLimit = 100

// Result is one fetched batch.
type Result struct {
	Tasks []task.Task
	// Count is the number of tasks the service holds.
	Count int
	// Truncated is set when Count exceeds the batch that was fetched.
	Truncated bool
	FetchedAt time.Time
}

type Gateway struct {
	svc   service.Service
	cache *Cache
	limit int
}

func New(svc service.Service, cache *Cache, batchLimit int) *Gateway {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	return &Gateway{svc: svc, cache: cache, limit: batchLimit}
}

// Fetch returns the batch for key, from the cache when fresh or else by
// issuing a single read.
func (g *Gateway) Fetch(ctx context.Context, key Key) (Result, error) {
	if res, ok := g.cache.Get(key); ok {
		logger.L().WithFields(keyFields(key)).Debug("task batch served from cache")
		return res, nil
	}

	epoch := g.cache.Epoch()
	page, err := g.svc.ListTasks(ctx, 0, g.limit)
	if err != nil {
		logger.L().WithFields(keyFields(key)).WithError(err).Warn("task batch fetch failed")
		return Result{}, err
	}
	res := Result{
		Tasks:     page.Data,
		Count:     page.Count,
		Truncated: page.Count > len(page.Data),
		FetchedAt: time.Now(),
	}
	if !g.cache.SetIfCurrent(key, res, epoch) {
		logger.L().WithFields(keyFields(key)).Debug("task batch invalidated in flight, not cached")
		return res, nil
	}
	logger.L().WithFields(keyFields(key)).WithField("count", page.Count).Debug("task batch fetched")
	return res, nil
}

// Invalidate drops every cached task read so the next Fetch goes to the
// service. Every successful mutation calls it.
func (g *Gateway) Invalidate() {
	n := g.cache.Invalidate(ResourceTasks)
	logger.L().WithField("entries", n).Debug("task cache invalidated")
}

func (g *Gateway) BatchLimit() int { return g.limit }

func keyFields(k Key) logrus.Fields {
	return logrus.Fields{
		"page":     k.Page,
		"status":   string(k.Status),
		"priority": string(k.Priority),
	}
}
