// Copyright (c) Huawei Technologies Co., Ltd. 2026. All rights reserved.
// qosguard licensed under the Mulan PSL v2.
// You can use this software according to the terms and conditions of the Mulan PSL v2.
// You may obtain a copy of Mulan PSL v2 at:
//     http://license.coscl.org.cn/MulanPSL2
// THIS SOFTWARE IS PROVIDED ON AN "AS IS" BASIS, WITHOUT WARRANTIES OF ANY KIND, EITHER EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO NON-INFRINGEMENT, MERCHANTABILITY OR FIT FOR A PARTICULAR
// PURPOSE.
// See the Mulan PSL v2 for more details.
// Author: qosguard team
// Create: 2026-03-19
// Description: This file serves metrics, health and detector control over http

// Package httpserver serves metrics, health and detector control over http
package httpserver

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"isula.org/qosguard/pkg/common/constant"
	"isula.org/qosguard/pkg/common/log"
)

// Server is the http server of qosguard
type Server struct {
	ctrl       controller
	addr       string
	server     *http.Server
	ready      chan struct{}
	inShutdown atomic.Bool
}

// New creates a new http server listening on addr
func New(ctrl controller, addr string) *Server {
	if addr == "" {
		addr = constant.DefaultServerAddr
	}
	return &Server{
		ctrl:  ctrl,
		addr:  addr,
		ready: make(chan struct{}),
	}
}

// Handler returns the router of the server
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/-/healthz", s.handleHealthz)
	router.Get("/-/readyz", s.handleReadyz)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/last", s.handleLastTick)
		r.Post("/detectors/{"+groupParam+"}/{"+idParam+"}/reset", s.handleReset(false))
		r.Post("/detectors/{"+groupParam+"}/{"+idParam+"}/force-reset", s.handleReset(true))
	})
	return router
}

// Start listens on the address and serves in a goroutine
func (s *Server) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		log.Infof("http server is shutting down, skipping start")
		return nil
	}
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadTimeout:       constant.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      constant.WriteTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}
	lc := &net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.addr)
	}
	log.Infof("http server listening on %s", listener.Addr().String())

	go func() {
		close(s.ready)
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Errorf("http server error: %v", err)
		}
	}()
	return nil
}

// Ready returns a channel that is closed when the server is serving
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown gracefully shuts down the http server
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		return nil
	}
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown")
	}
	log.Infof("http server closed")
	return nil
}

// requestLogger logs every request at debug level
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debugf("%s %s %d %v [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start),
			middleware.GetReqID(r.Context()))
	})
}
