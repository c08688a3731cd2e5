// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package httpapi exposes the health engine over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/config"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/health"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/snapshot"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/timeline"
)

// maxBodyBytes caps snapshot uploads.
const maxBodyBytes = 4 << 20

// Server serves status evaluations for posted snapshots.
type Server struct {
	echo    *echo.Echo
	calc    *health.Calculator
	metrics *Metrics
	logger  *zap.Logger
	config  *config.Config
}

// NewServer creates the HTTP server. A nil cfg uses the built-in defaults.
func NewServer(calc *health.Calculator, logger *zap.Logger, cfg *config.Config) (*Server, error) {
	if calc == nil {
		return nil, fmt.Errorf("calculator cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = config.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return nil
		}
	})

	s := &Server{
		echo:    e,
		calc:    calc,
		metrics: NewMetrics(),
		logger:  logger,
		config:  cfg,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/status", s.handleStatus)
	v1.POST("/status/report", s.handleStatusReport)
	v1.POST("/reconcile", s.handleReconcile)
}

// ServeHTTP lets the server be mounted or exercised with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleStatus(c echo.Context) error {
	snap, err := s.bindSnapshot(c)
	if err != nil {
		return err
	}
	report := s.calc.CalculateAt(snap.Input, s.evaluationTime(snap))
	s.metrics.ObserveReport(report)
	return c.JSON(http.StatusOK, report)
}

func (s *Server) handleStatusReport(c echo.Context) error {
	snap, err := s.bindSnapshot(c)
	if err != nil {
		return err
	}
	now := s.evaluationTime(snap)
	report := s.calc.CalculateAt(snap.Input, now)
	s.metrics.ObserveReport(report)
	return c.JSON(http.StatusOK, health.GenerateStatusReport(snap.Product, report, now))
}

func (s *Server) handleReconcile(c echo.Context) error {
	snap, err := s.bindSnapshot(c)
	if err != nil {
		return err
	}
	res := timeline.Reconcile(snap.Releases, snap.Features, snap.Issues, s.evaluationTime(snap),
		timeline.Options{ExtensionDays: s.config.Health.ExtensionDays})
	s.metrics.ObserveReconcile(res)

	s.logger.Debug("releases reconciled",
		zap.String("product", snap.Product.Name),
		zap.Int("auto_completed", res.AutoCompleted),
		zap.Int("extended", res.Extended),
	)
	return c.JSON(http.StatusOK, res)
}

// bindSnapshot decodes the JSON request body.
func (s *Server) bindSnapshot(c echo.Context) (*snapshot.Snapshot, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unable to read request body")
	}
	snap, err := snapshot.Decode(body, snapshot.FormatJSON)
	if err != nil {
		s.logger.Warn("invalid snapshot", zap.Error(err))
		if errors.Is(err, snapshot.ErrEmptySnapshot) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "request body is empty")
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid snapshot")
	}
	return snap, nil
}

// evaluationTime prefers the snapshot's own date over the clock.
func (s *Server) evaluationTime(snap *snapshot.Snapshot) time.Time {
	if snap.Now != nil {
		return snap.Now.Time
	}
	return s.calc.Now()
}

// Start listens on the configured address and blocks until shutdown.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.logger.Info("starting http server", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
