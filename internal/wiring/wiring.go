// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/licheck/internal/adapters/config"
	_ "go.trai.ch/licheck/internal/adapters/logger"
	_ "go.trai.ch/licheck/internal/adapters/memcache"
	_ "go.trai.ch/licheck/internal/adapters/pip"
	_ "go.trai.ch/licheck/internal/adapters/report"
	// Register app and engine nodes.
	_ "go.trai.ch/licheck/internal/app"
	_ "go.trai.ch/licheck/internal/engine/resolver"
)
