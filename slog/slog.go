// Package slog decorates readable services with structured logging.
package slog
