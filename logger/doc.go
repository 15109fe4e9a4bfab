// Package logger provides structured logging for supplysched callers
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
// The schedule computation engines are silent; logging happens in the
// orchestration code around them (cascade propagation in particular).
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("propagation")
//	log.Info("round complete", logger.Fields(logger.FieldIteration, 2))
package logger
