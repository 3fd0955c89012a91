// Package svlog centralizes how ScreenView components obtain a scoped
// logger. Every component takes a logging.LoggerFactory and falls back
// to a fresh pion default factory when none is supplied,
// matching the pattern used throughout the transport, IM, and
// commissioning layers this code is adapted from.
package svlog

import (
	"github.com/pion/logging"
)

// Factory resolves cfg to a usable logging.LoggerFactory, returning a
// fresh logging.NewDefaultLoggerFactory() when cfg is nil.
func Factory(cfg logging.LoggerFactory) logging.LoggerFactory {
	if cfg != nil {
		return cfg
	}
	return logging.NewDefaultLoggerFactory()
}

// New resolves cfg and immediately creates a scoped logger from it, the
// shape nearly every component constructor needs.
func New(cfg logging.LoggerFactory, scope string) logging.LeveledLogger {
	return Factory(cfg).NewLogger(scope)
}
