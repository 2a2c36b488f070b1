//go:build !cgo_sqlite
// +build !cgo_sqlite

package vectorstore

// This file is compiled by default and uses a pure Go sqlite
// implementation: no C compiler required and cross-compilation works
// everywhere. The cgo driver is slightly faster for large stores.
//
// Build command:
//   CGO_ENABLED=0 go build ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the sqlite driver to use
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)
