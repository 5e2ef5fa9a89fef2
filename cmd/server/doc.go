// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package main is the entry point for the Spotseeker server.
//
// Spotseeker is a search and availability backend for study spots: campus
// libraries, cafes, labs, and loanable resources. It serves a REST API for
// spot CRUD guarded by optimistic version tokens, weekly availability
// windows with automatic interval coalescing, and a search pipeline that
// combines attribute filters, open-hours matching, and proximity ranking.
//
// # Startup Order
//
//  1. Configuration: koanf v2 layering defaults, config.yaml, environment
//  2. Storage: DuckDB (persistent) or in-memory (tests, ephemeral)
//  3. Result cache and mutation event bus
//  4. Authentication: JWT bearer tokens or open mode
//  5. Supervisor tree: cache invalidator and HTTP server under suture
//
// # Configuration
//
// Settings layer from three sources, the highest priority winning:
//   - Environment variables (HTTP_PORT, DB_DRIVER, JWT_SECRET, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// For JWT authentication (the default):
//   - JWT_SECRET: 32+ character secret for token signing
//   - ADMIN_USERNAME / ADMIN_PASSWORD: login credentials
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// in-flight requests (10s bound), the event router flushes, and storage
// closes.
//
// # Example Usage
//
// Development, open auth, ephemeral storage:
//
//	export AUTH_MODE=none
//	export DB_DRIVER=memory
//	./spotseeker-server
//
// Production:
//
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export ADMIN_USERNAME=admin
//	export ADMIN_PASSWORD=secure-password
//	export DUCKDB_PATH=/data/spotseeker.duckdb
//	./spotseeker-server
package main
