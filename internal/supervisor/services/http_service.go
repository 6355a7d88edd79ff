// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	Serve(ln net.Listener) error
	Shutdown(ctx context.Context) error
}

// HTTPServerService binds addr and serves the API on it. Every Serve call
// binds a fresh listener, so a restart by the supervisor re-binds the port.
type HTTPServerService struct {
	server          HTTPServer
	addr            string
	shutdownTimeout time.Duration
	logger          zerolog.Logger

	listen func(network, address string) (net.Listener, error)
	bound  atomic.Value // string
}

// NewHTTPServerService serves server on addr. A non-positive
// shutdownTimeout selects 10s.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHTTPServerService(server HTTPServer, addr string, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("service", "api-server").Logger(),
		listen:          net.Listen,
	}
}

// Addr returns the address of the current listener, or "" before the first
// successful bind. With a ":0" addr this is the port the kernel picked.
func (h *HTTPServerService) Addr() string {
	if v, ok := h.bound.Load().(string); ok {
		return v
	}
	return ""
}

// Serve implements suture.Service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	ln, err := h.listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", h.addr, err)
	}
	h.bound.Store(ln.Addr().String())

	done := make(chan error, 1)
	go func() {
		err := h.server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()

	h.logger.Info().Str("addr", ln.Addr().String()).Msg("API listening")

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("serve %s: %w", ln.Addr(), err)
		}
		return nil

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		start := time.Now()
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("drain API connections: %w", err)
		}
		<-done
		h.logger.Info().Dur("drained_in", time.Since(start)).Msg("API stopped")
		return ctx.Err()
	}
}

func (h *HTTPServerService) String() string {
	return "api-server"
}
