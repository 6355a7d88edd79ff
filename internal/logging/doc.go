// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package logging provides zerolog-based structured logging for Affinity.
//
// A process-wide logger is configured once at startup with Init. Packages
// that own a long-lived component (the recommendation engine, the HTTP
// server, the supervisor) derive a child logger with WithComponent and
// keep it, so every line carries a "component" field.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	log := logging.WithComponent("api")
//	log.Info().Str("addr", addr).Msg("listening")
//
// # Request Context
//
// The HTTP layer stores a request ID and optional correlation ID in the
// request context. Ctx returns a logger with both attached:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("recommendation failed")
//
// # slog Bridge
//
// The suture supervisor logs through sutureslog, which expects an
// *slog.Logger. NewSlogLogger adapts a zerolog.Logger so that supervisor
// events land in the same JSON stream.
//
// # Testing
//
// Tests assert on zerolog.New(&buf) output. Code under test that only
// needs a logger takes zerolog.Nop().
package logging
