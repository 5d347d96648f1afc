// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the Nyan API.

Two families of series are recorded:

  - Transport: request counts and latency per route pattern.
  - Social: votes, favorite toggles, ratings and comments, labelled by outcome.

Every recording method is safe to call on a nil [*Metrics], which lets tests and
tools construct services without a registry.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nyan"

// Metrics owns a private registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	votes     *prometheus.CounterVec
	favorites *prometheus.CounterVec
	ratings   prometheus.Counter
	comments  prometheus.Counter
}

// New builds a [Metrics] with Go runtime and process collectors attached.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "social",
			Name:      "votes_total",
			Help:      "Comment votes applied, by requested direction and resulting state.",
		}, []string{"direction", "state"}),
		favorites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "social",
			Name:      "favorite_toggles_total",
			Help:      "Favorite toggles, by resulting state.",
		}, []string{"favorited"}),
		ratings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "social",
			Name:      "ratings_submitted_total",
			Help:      "Ratings created or overwritten.",
		}),
		comments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "social",
			Name:      "comments_posted_total",
			Help:      "Comments posted.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.votes,
		m.favorites,
		m.ratings,
		m.comments,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry (used by tests to gather samples).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// # Transport

// ObserveRequest records a finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// # Social

// VoteApplied records a vote and the caller's resulting state ("upvoted", "downvoted", "neutral").
func (m *Metrics) VoteApplied(direction, state string) {
	if m == nil {
		return
	}
	m.votes.WithLabelValues(direction, state).Inc()
}

// FavoriteToggled records the outcome of a favorite toggle.
func (m *Metrics) FavoriteToggled(favorited bool) {
	if m == nil {
		return
	}
	m.favorites.WithLabelValues(strconv.FormatBool(favorited)).Inc()
}

// RatingSubmitted records a rating upsert.
func (m *Metrics) RatingSubmitted() {
	if m == nil {
		return
	}
	m.ratings.Inc()
}

// CommentPosted records a new comment.
func (m *Metrics) CommentPosted() {
	if m == nil {
		return
	}
	m.comments.Inc()
}
