// Package timeouts defines shared timeout constants used across binaries.
// Centralizing these values prevents drift between server and exporter
// boundaries and makes the durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP or gRPC server waits for in-flight
// requests during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreRequest caps a single storage call made on behalf of a page render.
const StoreRequest = 3 * time.Second

// ExportPage caps rendering one page during static export.
const ExportPage = 10 * time.Second
