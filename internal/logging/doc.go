// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

// Package logging configures the process-wide zerolog logger.
//
// Components do not use the global logger directly. They receive a
// zerolog.Logger from main and derive a child with a "component" field:
//
//	logger := logging.WithComponent("api")
//	logger.Info().Str("addr", addr).Msg("listening")
//
// Request-scoped code uses Ctx, which adds the request id stored by the
// request id middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("falling back to trending")
//
// SlogHandler adapts zerolog to log/slog for libraries that only accept an
// *slog.Logger, such as sutureslog.
//
// # Configuration
//
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include file:line (default: false)
package logging
